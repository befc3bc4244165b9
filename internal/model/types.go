package model

import "time"

const EnvelopeVersion = "v1"

// Item is a normalized yield pool as shown in the directory. Field names on
// the wire match what the web client consumes.
type Item struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Provider   string  `json:"provider"`
	Type       string  `json:"type"`
	APY        float64 `json:"apy"`
	Risk       string  `json:"risk"`
	MinDeposit float64 `json:"minDeposit"`
	TVLUSD     float64 `json:"tvlUsd"`
	Chain      string  `json:"chain"`
	Project    string  `json:"project"`
}

// Item.Type values.
const (
	TypeStablecoin = "stablecoin"
	TypeCrypto     = "crypto"
)

// SourceStatus distinguishes "the upstream answered" from "the upstream
// failed and we degraded to an empty list".
type SourceStatus string

const (
	SourceOK     SourceStatus = "ok"
	SourceFailed SourceStatus = "failed"
)

// Snapshot is one immutable fetch of the full pool list. Items is empty when
// Status is SourceFailed; callers that care can tell that apart from a
// genuinely empty directory.
type Snapshot struct {
	Items     []Item       `json:"items"`
	Status    SourceStatus `json:"status"`
	FetchedAt time.Time    `json:"fetched_at"`
}

type Envelope struct {
	Version  string       `json:"version"`
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Error    *ErrorBody   `json:"error"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     EnvelopeMeta `json:"meta"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type EnvelopeMeta struct {
	RequestID string       `json:"request_id"`
	Timestamp time.Time    `json:"timestamp"`
	Command   string       `json:"command,omitempty"`
	Source    SourceStatus `json:"source,omitempty"`
}
