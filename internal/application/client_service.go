package application

import (
	"context"
	"fmt"
	"time"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

// ClientService manages client profiles and their embedded workflow
// rules
type ClientService struct {
	clients domain.ClientRepository
	logger  *logging.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clients domain.ClientRepository, logger *logging.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

// CreateClient creates a client profile. Codes are unique.
func (s *ClientService) CreateClient(ctx context.Context, cmd CreateClientCommand) (*domain.Client, error) {
	existing, err := s.clients.FindByCode(ctx, cmd.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrClientCodeTaken
	}

	clientID := cmd.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("CL-%s", time.Now().UTC().Format("20060102150405"))
	}

	client, err := domain.NewClient(clientID, cmd.Code, cmd.Name, cmd.Contacts, cmd.WorkflowRules)
	if err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Created client",
		"clientId", client.ClientID,
		"code", cmd.Code,
	)

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, clientID)
}

// ListClients lists clients
func (s *ClientService) ListClients(ctx context.Context, pagination domain.Pagination) ([]*domain.Client, error) {
	return s.clients.FindAll(ctx, pagination)
}

// UpdateClient updates the profile fields of a client
func (s *ClientService) UpdateClient(ctx context.Context, cmd UpdateClientCommand) (*domain.Client, error) {
	client, err := s.findClient(ctx, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	if err := client.UpdateProfile(cmd.Name, cmd.Contacts); err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		client.SetActive(*cmd.Active)
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// UpdateWorkflowRules replaces a client's workflow rules
func (s *ClientService) UpdateWorkflowRules(ctx context.Context, cmd UpdateWorkflowRulesCommand) (*domain.Client, error) {
	client, err := s.findClient(ctx, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	if err := client.UpdateWorkflowRules(cmd.Rules); err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Updated workflow rules",
		"clientId", cmd.ClientID,
	)

	return client, nil
}

func (s *ClientService) findClient(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}
