package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/domains/servers/be/service"
	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

// ServerService is the registry surface exposed to operators.
type ServerService interface {
	Register(ctx context.Context, input service.RegisterInput) (service.Server, error)
	Get(ctx context.Context, id uuid.UUID) (service.Server, error)
	List(ctx context.Context, opts service.ListOptions) (service.ListResult, error)
	SetStatus(ctx context.Context, id uuid.UUID, status service.Status) (service.Server, error)
}

// Handler wires the server registry to the generated HTTP contract.
type Handler struct {
	svc    ServerService
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc ServerService, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("servers service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterServer implements POST /servers
func (h *Handler) RegisterServer(ctx context.Context, request hostingapi.RegisterServerRequestObject) (hostingapi.RegisterServerResponseObject, error) {
	if request.Body == nil {
		problem := buildProblem("Invalid request body", "request body is required", problems.TypeValidation, http.StatusBadRequest, nil)
		return hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}
	body := request.Body

	status := service.StatusActive
	if body.Status != nil {
		parsed, err := service.ParseStatus(*body.Status)
		if err != nil {
			problem := buildProblem("Invalid request", err.Error(), problems.TypeValidation, http.StatusBadRequest,
				map[string][]string{"status": {"status must be Active, Inactive or Maintenance"}})
			return hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
		}
		status = parsed
	}

	srv, err := h.svc.Register(ctx, service.RegisterInput{
		Name:         body.Name,
		Provider:     body.Provider,
		InstanceType: deref(body.InstanceType),
		InstanceID:   deref(body.InstanceId),
		PublicIP:     body.PublicIp,
		PrivateIP:    deref(body.PrivateIp),
		PanelURL:     deref(body.PanelUrl),
		Status:       status,
		MaxSites:     body.MaxSites,
		CPU:          derefInt(body.Cpu),
		RAMMB:        derefInt(body.RamMb),
		DiskGB:       derefInt(body.DiskGb),
		Authorization: service.Authorization{
			AuthType:   string(body.Authorization.AuthType),
			AuthSource: body.Authorization.AuthSource,
		},
	})
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.RegisterServerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}

	location := fmt.Sprintf("/api/v1/servers/%s", srv.ID)
	return hostingapi.RegisterServer201JSONResponse{
		Headers: hostingapi.RegisterServer201ResponseHeaders{Location: location},
		Body:    toAPIServer(srv),
	}, nil
}

// ListServers implements GET /servers
func (h *Handler) ListServers(ctx context.Context, request hostingapi.ListServersRequestObject) (hostingapi.ListServersResponseObject, error) {
	opts, fields := buildListOptions(request.Params)
	if len(fields) > 0 {
		problem := buildProblem("Invalid request", "invalid query parameters", problems.TypeValidation, http.StatusBadRequest, fields)
		return hostingapi.ListServersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	result, err := h.svc.List(ctx, opts)
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.ListServersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}

	items := make([]hostingapi.Server, 0, len(result.Servers))
	for _, srv := range result.Servers {
		items = append(items, toAPIServer(srv))
	}
	return hostingapi.ListServers200JSONResponse{
		Items:      items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}, nil
}

// GetServer implements GET /servers/{serverId}
func (h *Handler) GetServer(ctx context.Context, request hostingapi.GetServerRequestObject) (hostingapi.GetServerResponseObject, error) {
	srv, err := h.svc.Get(ctx, uuid.UUID(request.ServerId))
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.GetServerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.GetServer200JSONResponse(toAPIServer(srv)), nil
}

// SetServerStatus implements PUT /servers/{serverId}/status
func (h *Handler) SetServerStatus(ctx context.Context, request hostingapi.SetServerStatusRequestObject) (hostingapi.SetServerStatusResponseObject, error) {
	if request.Body == nil {
		problem := buildProblem("Invalid request body", "request body is required", problems.TypeValidation, http.StatusBadRequest, nil)
		return hostingapi.SetServerStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}
	status, err := service.ParseStatus(string(request.Body.Status))
	if err != nil {
		problem := buildProblem("Invalid request", err.Error(), problems.TypeValidation, http.StatusBadRequest,
			map[string][]string{"status": {"status must be Active, Inactive or Maintenance"}})
		return hostingapi.SetServerStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: http.StatusBadRequest}, nil
	}

	srv, err := h.svc.SetStatus(ctx, uuid.UUID(request.ServerId), status)
	if err != nil {
		statusCode, problem := h.problemForError(ctx, err)
		return hostingapi.SetServerStatusdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: statusCode}, nil
	}
	return hostingapi.SetServerStatus200JSONResponse(toAPIServer(srv)), nil
}

func (h *Handler) problemForError(ctx context.Context, err error) (int, hostingapi.ProblemDetails) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, buildProblem("Invalid request", "validation failed", problems.TypeValidation, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, buildProblem("Not found", err.Error(), problems.TypeNotFound, http.StatusNotFound, nil)
	default:
		platformlogging.FromContextOr(ctx, h.logger).Error("server operation failed", zap.Error(err))
		return http.StatusInternalServerError, buildProblem("Internal error", "internal error", problems.TypeInternal, http.StatusInternalServerError, nil)
	}
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

func buildListOptions(params hostingapi.ListServersParams) (service.ListOptions, map[string][]string) {
	opts := service.ListOptions{Page: 1, PageSize: 20}
	fields := map[string][]string{}
	if params.Page != nil {
		opts.Page = *params.Page
	}
	if params.PageSize != nil {
		opts.PageSize = *params.PageSize
	}
	if params.Status != nil {
		status, err := service.ParseStatus(*params.Status)
		if err != nil {
			fields["status"] = []string{err.Error()}
		} else {
			opts.Status = &status
		}
	}
	return opts, fields
}

// toAPIServer never carries secrets: the authorization source is a key name or
// secret path.
func toAPIServer(s service.Server) hostingapi.Server {
	return hostingapi.Server{
		ServerId:         s.ID,
		Name:             s.Name,
		Provider:         s.Provider,
		InstanceType:     optString(s.InstanceType),
		InstanceId:       optString(s.InstanceID),
		PublicIp:         s.PublicIP,
		PrivateIp:        optString(s.PrivateIP),
		PanelUrl:         optString(s.PanelURL),
		Status:           s.Status.String(),
		MaxSites:         s.MaxSites,
		CurrentSiteCount: s.CurrentSiteCount,
		Cpu:              &s.CPU,
		RamMb:            &s.RAMMB,
		DiskGb:           &s.DiskGB,
		Authorization: &hostingapi.Authorization{
			AuthType:   hostingapi.AuthorizationAuthType(s.Authorization.AuthType),
			AuthSource: s.Authorization.AuthSource,
		},
		CreatedAt: &s.CreatedAt,
		UpdatedAt: &s.UpdatedAt,
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

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
