package client

import (
	"encoding/json"
	"sort"
)

// NormalizeCollection turns any of the gateway's list body shapes into an
// ordered record slice. Accepted shapes: `{"data": [...]}`, a bare array, or
// an object keyed by record id. Anything else degrades to an empty slice,
// never an error.
func NormalizeCollection(body []byte) []Record {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return []Record{}
	}

	switch v := raw.(type) {
	case []interface{}:
		return recordSlice(v)
	case map[string]interface{}:
		if data, ok := v["data"]; ok {
			arr, ok := data.([]interface{})
			if !ok {
				return []Record{}
			}
			return recordSlice(arr)
		}
		return keyedRecords(v)
	default:
		return []Record{}
	}
}

func recordSlice(arr []interface{}) []Record {
	records := make([]Record, 0, len(arr))
	for _, item := range arr {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return []Record{}
		}
		records = append(records, rec)
	}
	return records
}

// keyedRecords handles the object-keyed-by-id shape. Key order in JSON
// objects is not preserved by decoding, so records are ordered by key for a
// stable result.
func keyedRecords(obj map[string]interface{}) []Record {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if _, ok := obj[k].(map[string]interface{}); !ok {
			return []Record{}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		rec := obj[k].(map[string]interface{})
		if _, ok := rec["id"]; !ok {
			rec["id"] = k
		}
		records = append(records, rec)
	}
	return records
}
