package timeline

// DeepMerge merges inc into dst and returns dst. For every key in inc: when
// both sides hold nested mappings they merge recursively, otherwise the
// incoming value replaces the existing one. dst may be nil.
func DeepMerge(dst, inc Fragment) Fragment {
	if dst == nil {
		dst = Fragment{}
	}
	for key, value := range inc {
		incMap, incIsMap := value.(map[string]any)
		if !incIsMap {
			dst[key] = value
			continue
		}
		dstMap, dstIsMap := dst[key].(map[string]any)
		if !dstIsMap {
			dstMap = map[string]any{}
		}
		dst[key] = DeepMerge(dstMap, incMap)
	}
	return dst
}

// DeepCopy clones a fragment so later merges cannot alias into it. Values
// other than nested maps and slices are copied by assignment; fragments hold
// JSON-compatible scalars, so that is a full copy.
func DeepCopy(src Fragment) Fragment {
	if src == nil {
		return nil
	}
	dst := make(Fragment, len(src))
	for key, value := range src {
		dst[key] = copyValue(value)
	}
	return dst
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return DeepCopy(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
