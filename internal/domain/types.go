// Package domain contains the core types shared across the application.
package domain

// SourceDocument is an uploaded job description: raw bytes plus the declared
// file name. It lives only for the request that carried it.
type SourceDocument struct {
	Name string
	Data []byte
}

// Finding is a single compliance-scanner hit: the risky-phrase label, the
// advisory guidance for the interviewer, and a snippet of the surrounding
// job-description text.
type Finding struct {
	Label    string `json:"label"`
	Advisory string `json:"advisory"`
	Snippet  string `json:"snippet"`
}

// GeneratedPack is the raw interview pack text returned by the completion
// provider for one request. It is never persisted; every generation starts
// from scratch.
type GeneratedPack struct {
	ProviderName string
	ModelName    string
	Content      string
}

// RenderedDocument is a downloadable encoding of a generated pack.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}
