// Package permissions holds the endpoint role policy. The policy ships
// embedded in the binary so a deploy and its access rules never drift apart.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Endpoint struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Endpoint `json:"endpoints"`
	Skip      bool       `json:"skip"`
}

// Find returns the endpoint entry for a routed path and method. An unlisted
// endpoint comes back zero-valued, which denies every role.
func (r *PermissionData) Find(path, method string) Endpoint {
	idx := slices.IndexFunc(r.Endpoints, func(e Endpoint) bool {
		return e.Path == path && e.Method == method
	})

	if idx == -1 {
		return Endpoint{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
