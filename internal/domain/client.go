package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client errors
var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientCodeRequired = errors.New("client code is required")
	ErrClientNameRequired = errors.New("client name is required")
	ErrClientCodeTaken    = errors.New("client code already in use")
	ErrClientDeactivated  = errors.New("client is deactivated")
)

// ClientContact is a contact person on a client profile
type ClientContact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Role  string `bson:"role,omitempty" json:"role,omitempty"`
}

// Client is a 3PL customer whose workflow rules govern receiving
type Client struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID      string             `bson:"clientId" json:"clientId"`
	Code          string             `bson:"code" json:"code"`
	Name          string             `bson:"name" json:"name"`
	Contacts      []ClientContact    `bson:"contacts,omitempty" json:"contacts,omitempty"`
	Active        bool               `bson:"active" json:"active"`
	WorkflowRules WorkflowRules      `bson:"workflowRules" json:"workflowRules"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewClient creates a client profile with normalized workflow rules
func NewClient(clientID, code, name string, contacts []ClientContact, rules WorkflowRules) (*Client, error) {
	if code == "" {
		return nil, ErrClientCodeRequired
	}
	if name == "" {
		return nil, ErrClientNameRequired
	}

	rules.Normalize()
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Client{
		ID:            primitive.NewObjectID(),
		ClientID:      clientID,
		Code:          code,
		Name:          name,
		Contacts:      contacts,
		Active:        true,
		WorkflowRules: rules,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateProfile updates the mutable profile fields
func (c *Client) UpdateProfile(name string, contacts []ClientContact) error {
	if name == "" {
		return ErrClientNameRequired
	}
	c.Name = name
	c.Contacts = contacts
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateWorkflowRules replaces the client's workflow rules
func (c *Client) UpdateWorkflowRules(rules WorkflowRules) error {
	rules.Normalize()
	if err := rules.Validate(); err != nil {
		return err
	}
	c.WorkflowRules = rules
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// SetActive flips the active flag
func (c *Client) SetActive(active bool) {
	c.Active = active
	c.UpdatedAt = time.Now().UTC()
}
