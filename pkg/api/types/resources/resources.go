package resources

import "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"

type Detail struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location *struct {
		EntityType string `json:"entity_type"`
		ID         string `json:"id"`
	} `json:"location,omitempty"`
}

func ComposeDetail(r db.Resource) Detail {
	detail := Detail{ID: r.ID, Code: r.Code, Name: r.Name}
	if r.Location != nil {
		detail.Location = &struct {
			EntityType string `json:"entity_type"`
			ID         string `json:"id"`
		}{EntityType: r.Location.EntityType, ID: r.Location.ID}
	}
	return detail
}

type Spec struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location *struct {
		EntityType string `json:"entity_type"`
		ID         string `json:"id"`
	} `json:"location,omitempty"`
}

func (spec Spec) Resource(layout string) db.Resource {
	r := db.Resource{Code: spec.Code, Name: spec.Name}
	if spec.Location != nil {
		r.Location = &db.ParentRef{
			EntityType: spec.Location.EntityType,
			ID:         spec.Location.ID,
			Layout:     layout,
		}
	}
	return r
}

type PeripheralDetail struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Model      string `json:"model"`
	ResourceID string `json:"resource"`
}

func ComposePeripheralDetail(p db.Peripheral) PeripheralDetail {
	return PeripheralDetail{
		ID: p.ID, Kind: string(p.Kind), Name: p.Name,
		Model: p.Model, ResourceID: p.ResourceID,
	}
}

type PeripheralSpec struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	ResourceID string `json:"resource"`
}

func (spec PeripheralSpec) Peripheral(kind db.PeripheralKind) db.Peripheral {
	return db.Peripheral{Kind: kind, Name: spec.Name, Model: spec.Model, ResourceID: spec.ResourceID}
}
