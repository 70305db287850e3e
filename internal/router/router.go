// Package router sets up the gin engine with all middlewares and routes.
package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/pesibar-dev/sikera-backend/api"
	"github.com/pesibar-dev/sikera-backend/internal/controllers/healthz"
	v1 "github.com/pesibar-dev/sikera-backend/internal/controllers/v1"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		// The middleware adds method, path, status and latency itself
		logger.WithLogger(func(c *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/healthz", healthz.Get)
	r.OPTIONS("/healthz", healthz.Options)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(&r.RouterGroup, "debug/pprof")
	}

	docs.SwaggerInfo.Title = "Sikera"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Sikera, a budget administration and construction monitoring system for regional government agencies."

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.DELETE("", v1.Cleanup)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterAgencyRoutes(group.Group("/agencies"))
	v1.RegisterFundingSourceRoutes(group.Group("/funding-sources"))
	v1.RegisterActivityRoutes(group.Group("/activities"))
	v1.RegisterSubActivityRoutes(group.Group("/sub-activities"))
	v1.RegisterFiscalYearRoutes(group.Group("/fiscal-years"))
	v1.RegisterAllocationRoutes(group.Group("/allocations"))
	v1.RegisterSignatoryRoutes(group.Group("/signatories"))
	v1.RegisterSubAllocationRoutes(group.Group("/sub-allocations"))
	v1.RegisterRealizationRoutes(group.Group("/realizations"))
	v1.RegisterRealizationMonthRoutes(group.Group("/realization-months"))
	v1.RegisterMonitoringRoutes(group.Group("/monitorings"))
	v1.RegisterMonitoringPhotoRoutes(group.Group("/monitoring-photos"))
	v1.RegisterBlankoCategoryRoutes(group.Group("/blanko-categories"))
	v1.RegisterBlankoItemRoutes(group.Group("/blanko-items"))
	v1.RegisterDashboardRoutes(group.Group("/dashboard"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"`
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`
	Version string `json:"version" example:"https://example.com/api/version"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// @Summary      API root
// @Description  Entrypoint for the API, listing all endpoints
// @Tags         General
// @Success      200  {object}  RootResponse
// @Router       / [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			V1:      httputil.RequestPathV1(c),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary      API version
// @Description  Returns the software version of the API
// @Tags         General
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       / [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       /version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Agencies       string `json:"agencies" example:"https://example.com/api/v1/agencies"`
	FundingSources string `json:"fundingSources" example:"https://example.com/api/v1/funding-sources"`
	Activities     string `json:"activities" example:"https://example.com/api/v1/activities"`
	SubActivities  string `json:"subActivities" example:"https://example.com/api/v1/sub-activities"`
	FiscalYears    string `json:"fiscalYears" example:"https://example.com/api/v1/fiscal-years"`
	Allocations    string `json:"allocations" example:"https://example.com/api/v1/allocations"`
	SubAllocations string `json:"subAllocations" example:"https://example.com/api/v1/sub-allocations"`
	Realizations   string `json:"realizations" example:"https://example.com/api/v1/realizations"`
	Monitorings    string `json:"monitorings" example:"https://example.com/api/v1/monitorings"`
	Dashboard      string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`
}

// @Summary      v1 API
// @Description  Returns general information about the v1 API
// @Tags         General
// @Success      200  {object}  V1Response
// @Router       /v1 [get]
func GetV1(c *gin.Context) {
	base := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Agencies:       base + "/agencies",
			FundingSources: base + "/funding-sources",
			Activities:     base + "/activities",
			SubActivities:  base + "/sub-activities",
			FiscalYears:    base + "/fiscal-years",
			Allocations:    base + "/allocations",
			SubAllocations: base + "/sub-allocations",
			Realizations:   base + "/realizations",
			Monitorings:    base + "/monitorings",
			Dashboard:      base + "/dashboard",
		},
	})
}

// @Summary      Allowed HTTP verbs
// @Description  Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags         General
// @Success      204
// @Router       /v1 [options]
func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}
