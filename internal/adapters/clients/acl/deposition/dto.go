// Package deposition implements the Anti-Corruption Layer translators for the
// downstream deposition service (a Zenodo-compatible API) that reserves and
// publishes DOIs for comments.
package deposition

// CreatorDTO matches the deposition metadata creator schema.
type CreatorDTO struct {
	Name  string `json:"name"`
	ORCID string `json:"orcid,omitempty"`
}

// CommunityDTO references a community the deposition is filed under.
type CommunityDTO struct {
	Identifier string `json:"identifier"`
}

// RelatedIdentifierDTO links the deposition to another record.
type RelatedIdentifierDTO struct {
	Identifier   string `json:"identifier"`
	Relation     string `json:"relation"`
	ResourceType string `json:"resource_type,omitempty"`
	Scheme       string `json:"scheme,omitempty"`
}

// MetadataDTO matches the metadata object sent when creating a deposition.
type MetadataDTO struct {
	UploadType         string                 `json:"upload_type"`
	PublicationType    string                 `json:"publication_type"`
	Title              string                 `json:"title"`
	Creators           []CreatorDTO           `json:"creators"`
	Description        string                 `json:"description"`
	Communities        []CommunityDTO         `json:"communities,omitempty"`
	RelatedIdentifiers []RelatedIdentifierDTO `json:"related_identifiers,omitempty"`
	PrereserveDOI      bool                   `json:"prereserve_doi"`
}

// CreateDepositionRequestDTO is the body of POST /deposit/depositions.
type CreateDepositionRequestDTO struct {
	Metadata MetadataDTO `json:"metadata"`
}

// PrereservedDOIDTO is the DOI the service reserved for an unpublished
// deposition.
type PrereservedDOIDTO struct {
	DOI   string `json:"doi"`
	RecID int64  `json:"recid"`
}

// DepositionDTO matches the deposition resource returned by the service.
type DepositionDTO struct {
	ID       int64  `json:"id"`
	State    string `json:"state"`
	DOI      string `json:"doi,omitempty"`
	Metadata struct {
		PrereserveDOI *PrereservedDOIDTO `json:"prereserve_doi,omitempty"`
	} `json:"metadata"`
}
