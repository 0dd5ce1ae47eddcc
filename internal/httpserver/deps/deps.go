package deps

import (
	"time"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/launcher"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/media"
	"github.com/MrSnakeDoc/homedeck/internal/session"
	"github.com/MrSnakeDoc/homedeck/internal/store/document"
	"github.com/MrSnakeDoc/homedeck/internal/web"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	AllowedHosts   []string         // Host headers allowed to access the app routes
	AllowedCIDRS   []string         // IPs allowed to access the readyz endpoint
	TrustProxy     bool             // true if running behind a trusted reverse proxy
	RequestTimeout time.Duration    // budget for /api handlers (0 disables)

	Documents *document.Store   // the persisted JSON document
	Gate      *auth.Gate        // authentication + authorization
	Sessions  session.Store     // session backend, pinged by readyz
	Media     *media.Scanner    // playlist discovery and track resolution
	Launcher  launcher.Launcher // opens paths on the host
	Pages     *web.Renderer     // HTML pages

	AccountsReloadTrigger chan struct{} // manual accounts reload (nil if no accounts file)
}
