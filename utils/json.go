package utils

import "encoding/json"

// StructToDocData converts a model struct to the map shape the document
// store persists. Round-tripping through JSON keeps the store payload in
// lockstep with the struct's json tags.
func StructToDocData[T any](input T) (map[string]any, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// DocDataToStruct is the inverse of StructToDocData.
func DocDataToStruct[T any](data map[string]any, output *T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, output)
}
