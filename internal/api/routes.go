package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/dvoicu/deploy-assistant/internal/api/middleware"
	"github.com/dvoicu/deploy-assistant/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler, auth restful.FilterFunction) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/login").
			To(handler.Login).
			Doc("Exchange credentials for an auth token").
			Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
			Reads(models.LoginRequest{}).
			Writes(models.LoginResponse{}).
			Returns(200, "OK", models.LoginResponse{}).
			Returns(401, "Unauthorized", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/chat").
			Filter(auth).
			To(handler.Chat).
			Doc("Send a chat message through the guardrail pipeline").
			Notes("Guardrail blocks are 200 responses with a substitution reply and a guardrail:<category> source tag.").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chat"}).
			Reads(models.ChatRequest{}).
			Writes(models.ChatResponse{}).
			Returns(200, "OK", models.ChatResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(401, "Unauthorized", middleware.ErrorResponse{}).
			Returns(502, "Agent Unavailable", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
