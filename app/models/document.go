package models

import "time"

// Meta tracks the document version. The version strictly increases on every
// successful write, so pollers can compare versions instead of diffing data.
type Meta struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profiles holds the cached parent and student rosters.
type Profiles struct {
	Parents  []ParentProfile  `json:"parents"`
	Students []StudentProfile `json:"students"`
}

// Document is the single aggregate persisted by the document store. It acts
// as a local-first cache in front of the canonical database.
type Document struct {
	Parents      []Parent        `json:"parents"`
	Applications []Application   `json:"applications"`
	Fees         []Fee           `json:"fees"`
	AdhocFees    []AdhocCampaign `json:"adhocFees"`
	AdhocBills   []AdhocBill     `json:"adhocBills"`
	Profiles     Profiles        `json:"profiles"`
	Meta         Meta            `json:"meta"`
}

// NewDocument returns an empty aggregate at version 0 with all collections
// initialized.
func NewDocument() *Document {
	doc := &Document{Meta: Meta{Version: 0, UpdatedAt: time.Now()}}
	doc.EnsureCollections()
	return doc
}

// EnsureCollections backfills collections that are missing from an older or
// hand-edited document so callers never see nil slices.
func (d *Document) EnsureCollections() {
	if d.Parents == nil {
		d.Parents = []Parent{}
	}
	if d.Applications == nil {
		d.Applications = []Application{}
	}
	if d.Fees == nil {
		d.Fees = []Fee{}
	}
	if d.AdhocFees == nil {
		d.AdhocFees = []AdhocCampaign{}
	}
	if d.AdhocBills == nil {
		d.AdhocBills = []AdhocBill{}
	}
	if d.Profiles.Parents == nil {
		d.Profiles.Parents = []ParentProfile{}
	}
	if d.Profiles.Students == nil {
		d.Profiles.Students = []StudentProfile{}
	}
}

// FindCampaign returns the ad-hoc campaign with the given id, or nil.
func (d *Document) FindCampaign(id string) *AdhocCampaign {
	for i := range d.AdhocFees {
		if d.AdhocFees[i].ID == id {
			return &d.AdhocFees[i]
		}
	}
	return nil
}

// FindApplication returns the application with the given id, or nil.
func (d *Document) FindApplication(id string) *Application {
	for i := range d.Applications {
		if d.Applications[i].ID == id {
			return &d.Applications[i]
		}
	}
	return nil
}
