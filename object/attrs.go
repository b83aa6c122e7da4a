package object

import "time"

func timeAttr(attrs map[string]any, key string) time.Time {
	s, ok := attrs[key].(string)
	if !ok {
		return time.Time{}
	}
	for _, format := range []string{DateFormat, time.RFC3339Nano, DateOnlyFormat} {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func refAttr(d *decoder, attrs map[string]any, key string) *Reference {
	raw, ok := attrs[key]
	if !ok || raw == nil {
		return nil
	}
	return d.decodeReference(raw)
}
