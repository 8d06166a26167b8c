package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// WorkflowRules errors
var (
	ErrUnknownRulesVersion = errors.New("unknown workflow rules version")
	ErrInvalidLotFormat    = errors.New("lot number format must contain at least one token")
	ErrEmptyContainerType  = errors.New("allowed container types must not contain empty entries")
	ErrContainerNotAllowed = errors.New("container type not allowed for client")
)

// WorkflowRulesVersion is the current rules schema version. Documents
// persisted without a version are treated as v1.
const WorkflowRulesVersion = 1

// WorkflowRules is the per-client configuration gating which receiving
// steps are mandatory
type WorkflowRules struct {
	Version                 int      `bson:"version" json:"version"`
	Enabled                 bool     `bson:"enabled" json:"enabled"`
	RequiresLotTracking     bool     `bson:"requiresLotTracking" json:"requiresLotTracking"`
	RequiresExpirationDates bool     `bson:"requiresExpirationDates" json:"requiresExpirationDates"`
	RequiresInspection      bool     `bson:"requiresInspection" json:"requiresInspection"`
	AutoCreateLots          bool     `bson:"autoCreateLots" json:"autoCreateLots"`
	LotNumberFormat         string   `bson:"lotNumberFormat,omitempty" json:"lotNumberFormat,omitempty"`
	AllowedContainerTypes   []string `bson:"allowedContainerTypes,omitempty" json:"allowedContainerTypes,omitempty"`
}

// DefaultWorkflowRules returns the rules applied when an order has no
// client, or the client has none configured: everything optional.
func DefaultWorkflowRules() WorkflowRules {
	return WorkflowRules{Version: WorkflowRulesVersion}
}

// DefaultLotNumberFormat is used when auto-create is on and the client
// did not configure a format
const DefaultLotNumberFormat = "{SKU}-{DATE}-{RAND}"

// Normalize fills documented defaults on a loaded rules document
func (r *WorkflowRules) Normalize() {
	if r.Version == 0 {
		r.Version = WorkflowRulesVersion
	}
	if r.AutoCreateLots && r.LotNumberFormat == "" {
		r.LotNumberFormat = DefaultLotNumberFormat
	}
	if r.AllowedContainerTypes == nil {
		r.AllowedContainerTypes = []string{}
	}
}

// Validate checks a loaded rules document
func (r *WorkflowRules) Validate() error {
	if r.Version != WorkflowRulesVersion {
		return ErrUnknownRulesVersion
	}
	if r.AutoCreateLots && !strings.Contains(r.LotNumberFormat, "{") {
		return ErrInvalidLotFormat
	}
	for _, ct := range r.AllowedContainerTypes {
		if strings.TrimSpace(ct) == "" {
			return ErrEmptyContainerType
		}
	}
	return nil
}

// AllowsContainerType reports whether the client permits the container
// type. An empty list means no restriction.
func (r *WorkflowRules) AllowsContainerType(containerType string) bool {
	if len(r.AllowedContainerTypes) == 0 {
		return true
	}
	for _, ct := range r.AllowedContainerTypes {
		if strings.EqualFold(ct, containerType) {
			return true
		}
	}
	return false
}

// GenerateLotNumber expands the format string for a SKU and supplier.
// Supported tokens: {SKU}, {SUPPLIER}, {DATE}, {RAND}.
func (r *WorkflowRules) GenerateLotNumber(sku, supplier string) string {
	format := r.LotNumberFormat
	if format == "" {
		format = DefaultLotNumberFormat
	}
	return expandLotFormat(format, sku, supplier, time.Now().UTC())
}

func expandLotFormat(format, sku, supplier string, now time.Time) string {
	out := format
	out = strings.ReplaceAll(out, "{SKU}", sku)
	out = strings.ReplaceAll(out, "{SUPPLIER}", sanitizeLotToken(supplier))
	out = strings.ReplaceAll(out, "{DATE}", now.Format("20060102"))
	out = strings.ReplaceAll(out, "{RAND}", fmt.Sprintf("%04d", rand.Intn(10000)))
	return out
}

// sanitizeLotToken strips characters that would break lot number parsing
// downstream (supplier names carry spaces and punctuation)
func sanitizeLotToken(s string) string {
	var b strings.Builder
	for _, c := range strings.ToUpper(s) {
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		}
	}
	return b.String()
}
