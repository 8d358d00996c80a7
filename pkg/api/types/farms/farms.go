package farms

import (
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

// Detail is the farm record as served by the API.
type Detail struct {
	ID              int64   `json:"id"`
	RootID          *int64  `json:"root_id,omitempty"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Layout          *string `json:"layout"`
	ParentServerURL *string `json:"parent_server_url,omitempty"`
	IP              *string `json:"ip,omitempty"`
}

func ComposeDetail(f db.Farm) Detail {
	return Detail{
		ID:              f.ID,
		RootID:          f.RootID,
		Name:            f.Name,
		Slug:            f.Slug,
		Layout:          f.Layout,
		ParentServerURL: f.ParentServerURL,
		IP:              f.IP,
	}
}

// Update is the PUT body of the farm endpoint. nil fields are left
// unchanged; empty strings request derivation (slug) or are rejected.
type Update struct {
	Name            *string `json:"name,omitempty"`
	Slug            *string `json:"slug,omitempty"`
	Layout          *string `json:"layout,omitempty"`
	ParentServerURL *string `json:"parent_server_url,omitempty"`
}

// Registration is the body a leaf POSTs to its parent server: every
// farm field except the primary key.
type Registration struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Layout          *string `json:"layout"`
	ParentServerURL *string `json:"parent_server_url,omitempty"`
	IP              *string `json:"ip,omitempty"`
}

func ComposeRegistration(f db.Farm) Registration {
	return Registration{
		Name:            f.Name,
		Slug:            f.Slug,
		Layout:          f.Layout,
		ParentServerURL: f.ParentServerURL,
		IP:              f.IP,
	}
}
