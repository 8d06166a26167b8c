package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/internal/testutil"
	"github.com/threepl-platform/inbound-service/pkg/logging"
)

func newClientService() (*ClientService, *testutil.MockClientRepository) {
	clients := testutil.NewMockClientRepository()
	logger := logging.New(logging.DefaultConfig("test"))
	return NewClientService(clients, logger), clients
}

func TestCreateClient(t *testing.T) {
	service, _ := newClientService()

	client, err := service.CreateClient(context.Background(), CreateClientCommand{
		Code: "ACME",
		Name: "Acme Corp",
		Contacts: []domain.ClientContact{
			{Name: "Jo Smith", Email: "jo@acme.example", Role: "ops"},
		},
		WorkflowRules: domain.WorkflowRules{Enabled: true, RequiresLotTracking: true},
	})

	require.NoError(t, err)
	assert.Contains(t, client.ClientID, "CL-")
	assert.True(t, client.Active)
	assert.Equal(t, domain.WorkflowRulesVersion, client.WorkflowRules.Version, "rules are normalized on create")
}

func TestCreateClientRejectsDuplicateCode(t *testing.T) {
	service, _ := newClientService()

	_, err := service.CreateClient(context.Background(), CreateClientCommand{Code: "ACME", Name: "Acme Corp"})
	require.NoError(t, err)

	_, err = service.CreateClient(context.Background(), CreateClientCommand{Code: "ACME", Name: "Acme Again"})
	assert.ErrorIs(t, err, domain.ErrClientCodeTaken)
}

func TestCreateClientValidation(t *testing.T) {
	service, _ := newClientService()

	_, err := service.CreateClient(context.Background(), CreateClientCommand{Name: "No Code"})
	assert.ErrorIs(t, err, domain.ErrClientCodeRequired)

	_, err = service.CreateClient(context.Background(), CreateClientCommand{Code: "NC"})
	assert.ErrorIs(t, err, domain.ErrClientNameRequired)
}

func TestUpdateClient(t *testing.T) {
	service, _ := newClientService()
	created, err := service.CreateClient(context.Background(), CreateClientCommand{Code: "ACME", Name: "Acme Corp"})
	require.NoError(t, err)

	inactive := false
	updated, err := service.UpdateClient(context.Background(), UpdateClientCommand{
		ClientID: created.ClientID,
		Name:     "Acme Corporation",
		Active:   &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.False(t, updated.Active)

	_, err = service.UpdateClient(context.Background(), UpdateClientCommand{ClientID: "CL-404", Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestUpdateWorkflowRules(t *testing.T) {
	service, _ := newClientService()
	created, err := service.CreateClient(context.Background(), CreateClientCommand{Code: "ACME", Name: "Acme Corp"})
	require.NoError(t, err)

	updated, err := service.UpdateWorkflowRules(context.Background(), UpdateWorkflowRulesCommand{
		ClientID: created.ClientID,
		Rules: domain.WorkflowRules{
			Enabled:        true,
			AutoCreateLots: true,
		},
	})

	require.NoError(t, err)
	assert.True(t, updated.WorkflowRules.AutoCreateLots)
	assert.Equal(t, domain.DefaultLotNumberFormat, updated.WorkflowRules.LotNumberFormat, "auto-create fills the default format")

	_, err = service.UpdateWorkflowRules(context.Background(), UpdateWorkflowRulesCommand{
		ClientID: created.ClientID,
		Rules: domain.WorkflowRules{
			Version: 99,
		},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownRulesVersion)
}
