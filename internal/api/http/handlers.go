package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/internal/application"
	"github.com/threepl-platform/inbound-service/internal/domain"
	"github.com/threepl-platform/inbound-service/pkg/logging"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
)

// Handlers contains HTTP handlers for the inbound receiving endpoints
type Handlers struct {
	receiving *application.ReceivingService
	putaway   *application.PutawayService
	scans     *application.ScanService
	damage    *application.DamageService
	clients   *application.ClientService
	dashboard *application.DashboardService
	metrics   *middleware.BusinessMetrics
	logger    *logging.Logger
}

// NewHandlers creates new HTTP handlers
func NewHandlers(
	receiving *application.ReceivingService,
	putaway *application.PutawayService,
	scans *application.ScanService,
	damage *application.DamageService,
	clients *application.ClientService,
	dashboard *application.DashboardService,
	metrics *middleware.BusinessMetrics,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		receiving: receiving,
		putaway:   putaway,
		scans:     scans,
		damage:    damage,
		clients:   clients,
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

// Domain errors whose messages do not carry a status-mapping keyword and
// would otherwise surface as internal errors.
var badRequestErrors = []error{
	domain.ErrQuantityNotPositive,
	domain.ErrReceivedTotalDecreased,
	domain.ErrNoLineItems,
	domain.ErrNothingToReceive,
	domain.ErrPalletRequired,
	domain.ErrPalletClosed,
	domain.ErrContainerNotAllowed,
	domain.ErrEmptyContainerType,
	domain.ErrInvalidLotFormat,
	domain.ErrUnknownRulesVersion,
	domain.ErrSublocationAtCapacity,
	domain.ErrNoSublocationSelected,
	domain.ErrNothingReceivedToStore,
	domain.ErrUnknownWorkflow,
	domain.ErrScansMissingToConfirm,
	domain.ErrClientDeactivated,
}

var conflictErrors = []error{
	domain.ErrOrderAlreadyReceived,
	domain.ErrAlreadyConfirmed,
	domain.ErrScanSessionComplete,
	domain.ErrClientCodeTaken,
}

func isAnyOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondDomainError maps a domain error to the right HTTP status before
// falling back to the generic domain error mapping.
func respondDomainError(responder *middleware.ErrorResponder, err error) {
	switch {
	case isAnyOf(err, conflictErrors):
		responder.RespondConflict(err.Error())
	case isAnyOf(err, badRequestErrors):
		responder.RespondBadRequest(err.Error())
	default:
		responder.RespondWithError(err)
	}
}

// paginationFromQuery reads page and pageSize query parameters, keeping
// the defaults for missing or out-of-range values.
func paginationFromQuery(c *gin.Context) domain.Pagination {
	pagination := domain.DefaultPagination()
	if page, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && page > 0 {
		pagination.Page = page
	}
	if size, err := strconv.ParseInt(c.Query("pageSize"), 10, 64); err == nil && size > 0 && size <= 100 {
		pagination.PageSize = size
	}
	return pagination
}

// userIDFrom prefers the request body's userId, falling back to the
// authenticated user header.
func userIDFrom(c *gin.Context, bodyUserID string) string {
	if bodyUserID != "" {
		return bodyUserID
	}
	return middleware.GetUserID(c)
}
