package profilecheck

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var profileSchemaJSON string

var (
	profileSchema     *gojsonschema.Schema
	profileSchemaErr  error
	profileSchemaOnce sync.Once
)

func documentSchema() (*gojsonschema.Schema, error) {
	profileSchemaOnce.Do(func() {
		profileSchema, profileSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchemaJSON))
	})
	return profileSchema, profileSchemaErr
}

// CheckDocumentShape checks the JSON structure of an imported profile
// document (types of every field). Field rules are not applied here.
// It returns the schema violations, or an error when raw is not JSON.
func CheckDocumentShape(raw []byte) ([]string, error) {
	schema, err := documentSchema()
	if err != nil {
		return nil, fmt.Errorf("load profile schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("read profile document: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		violations = append(violations, e.String())
	}
	return violations, nil
}
