package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	servershandler "github.com/zenGate-Global/palmyra-hosting/domains/servers/be/handler"
	siteshandler "github.com/zenGate-Global/palmyra-hosting/domains/sites/be/handler"
	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

// Both domain packages call their handler Handler; the aliases give the
// embedded fields distinct names.
type (
	serverRoutes = servershandler.Handler
	siteRoutes   = siteshandler.Handler
)

// hostingAPI serves the hosting contract by joining the per-domain handlers.
type hostingAPI struct {
	*serverRoutes
	*siteRoutes
}

var _ hostingapi.StrictServerInterface = hostingAPI{}

func newHostingAPI(servers servershandler.ServerService, sites siteshandler.SiteService, engine siteshandler.SetupEngine, logger *zap.Logger) hostingAPI {
	return hostingAPI{
		serverRoutes: servershandler.New(servers, logger),
		siteRoutes:   siteshandler.New(sites, engine, logger),
	}
}

// mountHostingAPI registers the generated routes on r. Parameter binding and
// body decoding failures are answered with problem details.
func mountHostingAPI(r chi.Router, api hostingapi.StrictServerInterface, logger *zap.Logger) {
	requestErr := func(w http.ResponseWriter, _ *http.Request, err error) {
		problems.BadRequest(w, err.Error(), nil)
	}
	responseErr := func(w http.ResponseWriter, r *http.Request, err error) {
		platformlogging.FromRequest(r, logger).Error("write hosting response", zap.Error(err))
		problems.Write(w, problems.New(http.StatusInternalServerError, "Internal error", "internal error", problems.TypeInternal, nil))
	}

	strict := hostingapi.NewStrictHandlerWithOptions(api, nil, hostingapi.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErr,
		ResponseErrorHandlerFunc: responseErr,
	})
	_ = hostingapi.HandlerWithOptions(strict, hostingapi.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: requestErr,
	})
}
