package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mdw "account-api/internal/transport/http/middleware"
	resp "account-api/internal/transport/http/response"
)

type Binder string

const (
	BindJSON Binder = "json" // request body
	BindURI  Binder = "uri"  // path params, e.g. /admin/:id
	BindBoth Binder = "both" // path params, then body
	BindNone Binder = "none"
)

// EZ registers actions on a group. authn guards every action with Auth set.
type EZ struct {
	g     *gin.RouterGroup
	authn gin.HandlerFunc
}

func New(g *gin.RouterGroup, authn gin.HandlerFunc) EZ { return EZ{g: g, authn: authn} }

// Action describes one endpoint: I is the bound input, O the response data.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Auth requires a valid bearer token; Role additionally requires that
	// exact role. Role implies Auth.
	Auth bool
	Role string
	// Status and Message fill the success envelope; Status defaults to 200.
	Status  int
	Message string
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	var chain []gin.HandlerFunc
	if a.Auth || a.Role != "" {
		if e.authn == nil {
			panic("ez: " + a.Path + " requires auth but no authenticator is configured")
		}
		chain = append(chain, e.authn)
	}
	if a.Role != "" {
		chain = append(chain, mdw.Authorize(a.Role))
	}
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	chain = append(chain, func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			resp.JSON(c, bindError(err))
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			_ = c.Error(err)
			resp.JSON(c, resp.FromError(err))
			return
		}
		resp.JSON(c, resp.New(status, a.Message, out))
	})

	e.g.Handle(strings.ToUpper(a.Method), a.Path, chain...)
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return c.ShouldBindJSON(in)
	case BindURI:
		return c.ShouldBindUri(in)
	case BindBoth:
		if err := c.ShouldBindUri(in); err != nil {
			return err
		}
		return c.ShouldBindJSON(in)
	default:
		return nil
	}
}
