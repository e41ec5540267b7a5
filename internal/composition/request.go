package composition

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteRequest stores a request as YAML.
func WriteRequest(req *Request, path string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRequest loads a request from YAML. Unknown keys are rejected and the
// quality field is mandatory; all other checks belong to Validate.
func ReadRequest(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var req Request
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", path, err)
	}
	if req.Quality == "" {
		return nil, errors.New("request: quality is required")
	}
	return &req, nil
}
