package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

// SiteService is the subset of service.Service used over HTTP.
type SiteService interface {
	Create(ctx context.Context, input service.CreateInput) (service.Site, error)
	Get(ctx context.Context, id uuid.UUID) (service.Site, error)
	List(ctx context.Context, opts service.ListOptions) (service.ListResult, error)
	Suspend(ctx context.Context, id uuid.UUID) (service.Site, error)
	Maintenance(ctx context.Context, id uuid.UUID) (service.Site, error)
	Activate(ctx context.Context, id uuid.UUID) (service.Site, error)
	Deactivate(ctx context.Context, id uuid.UUID) (service.Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CheckHTTPS(ctx context.Context, id uuid.UUID) (service.HTTPSCheckResult, error)
	CreateTemplate(ctx context.Context, input service.TemplateInput) (service.Template, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (service.Template, error)
}

// SetupEngine drives checkpoints on demand.
type SetupEngine interface {
	Advance(ctx context.Context, siteID uuid.UUID) (service.Site, error)
	Reset(ctx context.Context, siteID uuid.UUID) (service.Site, error)
}

// Handler wires sites and templates to the generated HTTP contract.
type Handler struct {
	sites  SiteService
	engine SetupEngine
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(sites SiteService, engine SetupEngine, logger *zap.Logger) *Handler {
	if sites == nil {
		panic("sites service is required")
	}
	if engine == nil {
		panic("setup engine is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{sites: sites, engine: engine, logger: logger}
}

const adminStatuses = "status must be Active, Inactive, Maintenance or Suspended"

// CreateSite implements POST /sites
func (h *Handler) CreateSite(ctx context.Context, request hostingapi.CreateSiteRequestObject) (hostingapi.CreateSiteResponseObject, error) {
	if request.Body == nil {
		problem := buildProblem("Invalid request body", "request body is required", problems.TypeValidation, http.StatusBadRequest, nil)
		return hostingapi.CreateSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	input := service.CreateInput{
		UserID:     uuid.UUID(request.Body.UserId),
		TemplateID: uuid.UUID(request.Body.TemplateId),
		Domain:     request.Body.Domain,
	}
	if request.Body.DnsProvider != nil {
		input.DNSProvider = string(*request.Body.DnsProvider)
	}

	site, err := h.sites.Create(ctx, input)
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.CreateSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}

	location := fmt.Sprintf("/api/v1/sites/%s", site.ID)
	return hostingapi.CreateSite201JSONResponse{
		Headers: hostingapi.CreateSite201ResponseHeaders{Location: location},
		Body:    toAPISite(site),
	}, nil
}

// ListSites implements GET /sites
func (h *Handler) ListSites(ctx context.Context, request hostingapi.ListSitesRequestObject) (hostingapi.ListSitesResponseObject, error) {
	opts, fields := buildListOptions(request.Params)
	if len(fields) > 0 {
		problem := buildProblem("Invalid request", "invalid query parameters", problems.TypeValidation, http.StatusBadRequest, fields)
		return hostingapi.ListSitesdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	result, err := h.sites.List(ctx, opts)
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.ListSitesdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}

	items := make([]hostingapi.Site, 0, len(result.Sites))
	for _, s := range result.Sites {
		items = append(items, toAPISite(s))
	}
	return hostingapi.ListSites200JSONResponse{
		Items:      items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}

// GetSite implements GET /sites/{siteId}
func (h *Handler) GetSite(ctx context.Context, request hostingapi.GetSiteRequestObject) (hostingapi.GetSiteResponseObject, error) {
	site, err := h.sites.Get(ctx, uuid.UUID(request.SiteId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.GetSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.GetSite200JSONResponse(toAPISite(site)), nil
}

// DeleteSite implements DELETE /sites/{siteId}
func (h *Handler) DeleteSite(ctx context.Context, request hostingapi.DeleteSiteRequestObject) (hostingapi.DeleteSiteResponseObject, error) {
	if err := h.sites.Delete(ctx, uuid.UUID(request.SiteId)); err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.DeleteSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.DeleteSite204Response{}, nil
}

// SetSiteStatus implements PUT /sites/{siteId}/status
func (h *Handler) SetSiteStatus(ctx context.Context, request hostingapi.SetSiteStatusRequestObject) (hostingapi.SetSiteStatusResponseObject, error) {
	if request.Body == nil {
		problem := buildProblem("Invalid request body", "request body is required", problems.TypeValidation, http.StatusBadRequest, nil)
		return hostingapi.SetSiteStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	var transition func(context.Context, uuid.UUID) (service.Site, error)
	switch request.Body.Status {
	case hostingapi.SiteStatusRequestStatusActive:
		transition = h.sites.Activate
	case hostingapi.SiteStatusRequestStatusInactive:
		transition = h.sites.Deactivate
	case hostingapi.SiteStatusRequestStatusMaintenance:
		transition = h.sites.Maintenance
	case hostingapi.SiteStatusRequestStatusSuspended:
		transition = h.sites.Suspend
	default:
		problem := buildProblem("Invalid request", "setup statuses are managed by the provisioning engine", problems.TypeValidation,
			http.StatusBadRequest, map[string][]string{"status": {adminStatuses}})
		return hostingapi.SetSiteStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	site, err := transition(ctx, uuid.UUID(request.SiteId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.SetSiteStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.SetSiteStatus200JSONResponse(toAPISite(site)), nil
}

// AdvanceSite implements POST /sites/{siteId}/advance
func (h *Handler) AdvanceSite(ctx context.Context, request hostingapi.AdvanceSiteRequestObject) (hostingapi.AdvanceSiteResponseObject, error) {
	site, err := h.engine.Advance(ctx, uuid.UUID(request.SiteId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.AdvanceSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.AdvanceSite200JSONResponse(toAPISite(site)), nil
}

// ResetSite implements POST /sites/{siteId}/reset
func (h *Handler) ResetSite(ctx context.Context, request hostingapi.ResetSiteRequestObject) (hostingapi.ResetSiteResponseObject, error) {
	site, err := h.engine.Reset(ctx, uuid.UUID(request.SiteId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.ResetSitedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.ResetSite200JSONResponse(toAPISite(site)), nil
}

// CheckSiteHttps implements GET /sites/{siteId}/https-check
func (h *Handler) CheckSiteHttps(ctx context.Context, request hostingapi.CheckSiteHttpsRequestObject) (hostingapi.CheckSiteHttpsResponseObject, error) {
	res, err := h.sites.CheckHTTPS(ctx, uuid.UUID(request.SiteId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.CheckSiteHttpsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	check := hostingapi.HTTPSCheck{
		Url:       res.URL,
		Working:   res.Working,
		Error:     optString(res.Error),
		CheckedAt: res.CheckedAt,
	}
	if res.StatusCode != 0 {
		check.StatusCode = &res.StatusCode
	}
	return hostingapi.CheckSiteHttps200JSONResponse(check), nil
}

// CreateTemplate implements POST /templates
func (h *Handler) CreateTemplate(ctx context.Context, request hostingapi.CreateTemplateRequestObject) (hostingapi.CreateTemplateResponseObject, error) {
	if request.Body == nil {
		problem := buildProblem("Invalid request body", "request body is required", problems.TypeValidation, http.StatusBadRequest, nil)
		return hostingapi.CreateTemplatedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	tpl, err := h.sites.CreateTemplate(ctx, service.TemplateInput{
		Name:      request.Body.Name,
		Slug:      request.Body.Slug,
		MinCPU:    derefInt(request.Body.MinCpu),
		MinRAMMB:  derefInt(request.Body.MinRamMb),
		MinDiskGB: derefInt(request.Body.MinDiskGb),
	})
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.CreateTemplatedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}

	location := fmt.Sprintf("/api/v1/templates/%s", tpl.ID)
	return hostingapi.CreateTemplate201JSONResponse{
		Headers: hostingapi.CreateTemplate201ResponseHeaders{Location: location},
		Body:    toAPITemplate(tpl),
	}, nil
}

// GetTemplate implements GET /templates/{templateId}
func (h *Handler) GetTemplate(ctx context.Context, request hostingapi.GetTemplateRequestObject) (hostingapi.GetTemplateResponseObject, error) {
	tpl, err := h.sites.GetTemplate(ctx, uuid.UUID(request.TemplateId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.GetTemplatedefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.GetTemplate200JSONResponse(toAPITemplate(tpl)), nil
}

func (h *Handler) problemForError(ctx context.Context, err error) (int, hostingapi.ProblemDetails) {
	var (
		validationErr *service.ValidationError
		checkpointErr *service.CheckpointError
	)
	switch {
	case errors.As(err, &checkpointErr):
		return checkpointProblem(checkpointErr)
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, buildProblem("Invalid request", "validation failed", problems.TypeValidation, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrTemplateNotFound):
		return http.StatusNotFound, buildProblem("Not found", err.Error(), problems.TypeNotFound, http.StatusNotFound, nil)
	case errors.Is(err, service.ErrConflictDomain), errors.Is(err, service.ErrConflictTemplate),
		errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrSiteBusy):
		return http.StatusConflict, buildProblem("Conflict", err.Error(), problems.TypeConflict, http.StatusConflict, nil)
	case errors.Is(err, service.ErrNoCapacity):
		return http.StatusServiceUnavailable, buildProblem("No capacity", err.Error(), problems.TypeCapacity, http.StatusServiceUnavailable, nil)
	default:
		platformlogging.FromContextOr(ctx, h.logger).Error("site operation failed", zap.Error(err))
		return http.StatusInternalServerError, buildProblem("Internal error", "internal error", problems.TypeInternal, http.StatusInternalServerError, nil)
	}
}

// checkpointProblem reports a failed checkpoint; the site is already persisted
// in SetupError and can be fetched for details.
func checkpointProblem(err *service.CheckpointError) (int, hostingapi.ProblemDetails) {
	title := fmt.Sprintf("Checkpoint %s failed", err.Checkpoint)
	status, problemType := http.StatusInternalServerError, problems.TypeInternal
	switch err.Kind {
	case service.KindValidation:
		status, problemType = http.StatusUnprocessableEntity, problems.TypeValidation
	case service.KindCapacity:
		status, problemType = http.StatusServiceUnavailable, problems.TypeCapacity
	case service.KindExternalAPI, service.KindNotFound:
		status, problemType = http.StatusBadGateway, problems.TypeUpstream
	}
	return status, buildProblem(title, err.Error(), problemType, status, nil)
}

func buildProblem(title, detail, problemType string, status int, errs map[string][]string) hostingapi.ProblemDetails {
	return hostingapi.ProblemDetails{
		Title:  title,
		Detail: strPtr(detail),
		Status: status,
		Type:   strPtr(problemType),
		Errors: mapPtr(errs),
	}
}

func buildListOptions(params hostingapi.ListSitesParams) (service.ListOptions, map[string][]string) {
	opts := service.ListOptions{Page: 1, PageSize: 20}
	fields := map[string][]string{}
	if params.Page != nil {
		opts.Page = *params.Page
	}
	if params.PageSize != nil {
		opts.PageSize = *params.PageSize
	}
	if params.Status != nil {
		for _, name := range strings.Split(*params.Status, ",") {
			status, err := service.ParseStatus(name)
			if err != nil {
				fields["status"] = append(fields["status"], err.Error())
				continue
			}
			opts.Statuses = append(opts.Statuses, status)
		}
	}
	if params.UserId != nil {
		id := uuid.UUID(*params.UserId)
		opts.UserID = &id
	}
	return opts, fields
}

// toAPISite leaves credentials behind; they never leave the service.
func toAPISite(s service.Site) hostingapi.Site {
	return hostingapi.Site{
		SiteId:            s.ID,
		UserId:            s.UserID,
		TemplateId:        s.TemplateID,
		ServerId:          s.ServerID,
		Domain:            s.Domain,
		DnsProvider:       optString(s.DNSProvider),
		DnsRecordId:       s.DNSRecordID,
		RootDirectory:     optString(s.RootDirectory),
		SiteOwnerUsername: optString(s.SiteOwnerUsername),
		Status:            hostingapi.SiteStatus(s.Status.String()),
		SetupProgress:     hostingapi.SiteSetupProgress(s.Progress.String()),
		LastError:         s.LastError,
		LastErrorKind:     optString(string(s.LastErrorKind)),
		SetupAttempts:     s.SetupAttempts,
		LastAttemptAt:     s.LastAttemptAt,
		CreatedAt:         &s.CreatedAt,
		UpdatedAt:         &s.UpdatedAt,
	}
}

func toAPITemplate(t service.Template) hostingapi.Template {
	return hostingapi.Template{
		TemplateId: t.ID,
		Name:       t.Name,
		Slug:       t.Slug,
		MinCpu:     &t.MinCPU,
		MinRamMb:   &t.MinRAMMB,
		MinDiskGb:  &t.MinDiskGB,
		CreatedAt:  &t.CreatedAt,
	}
}

func strPtr(v string) *string {
	return &v
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func mapPtr(m map[string][]string) *map[string][]string {
	if m == nil {
		return nil
	}
	return &m
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
