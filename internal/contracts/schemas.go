package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/localnerve/rentdb/data"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Request schema names
const (
	Login             = "login"
	UserCreate        = "user-create"
	UserUpdate        = "user-update"
	PropertyCreate    = "property-create"
	PropertyUpdate    = "property-update"
	TenantCreate      = "tenant-create"
	TenantUpdate      = "tenant"
	PaymentCreate     = "payment-create"
	PaymentUpdate     = "payment"
	MaintenanceCreate = "maintenance-create"
	MaintenanceUpdate = "maintenance"
	ContractCreate    = "contract-create"
	ContractUpdate    = "contract"
	BulkDelete        = "bulk-delete"
)

const baseURL = "https://rentdb.local/schemas/"

// ErrInvalidBody is wrapped by every validation failure
var ErrInvalidBody = errors.New("invalid request body")

var compiledSchemas = mustCompile(data.Schemas)

// mustCompile registers every embedded schema as a resource, so $ref works between them,
// then compiles each one. A broken embedded schema is a build defect, hence the panic.
func mustCompile(fsys fs.FS) map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names, err := fs.Glob(fsys, "schemas/*.json")
	if err != nil {
		panic(fmt.Sprintf("contracts: listing schemas: %v", err))
	}

	for _, name := range names {
		file, err := fsys.Open(name)
		if err != nil {
			panic(fmt.Sprintf("contracts: opening %s: %v", name, err))
		}
		err = compiler.AddResource(baseURL+path.Base(name), file)
		file.Close()
		if err != nil {
			panic(fmt.Sprintf("contracts: adding schema %s: %v", name, err))
		}
	}

	compiled := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		base := path.Base(name)
		schema, err := compiler.Compile(baseURL + base)
		if err != nil {
			panic(fmt.Sprintf("contracts: compiling %s: %v", name, err))
		}
		compiled[strings.TrimSuffix(base, ".json")] = schema
	}

	return compiled
}

// Validate checks a raw JSON request body against the named schema
func Validate(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema %q not registered", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON", ErrInvalidBody)
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidBody, strings.Join(leafMessages(ve), "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return nil
}

// Names lists the registered schemas
func Names() []string {
	names := make([]string, 0, len(compiledSchemas))
	for name := range compiledSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// leafMessages flattens the cause tree to the innermost failures
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + ve.Message}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, leafMessages(cause)...)
	}
	return out
}
