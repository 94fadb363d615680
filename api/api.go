package api

import (
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	cacheSize = 512
	cacheTTL  = time.Minute
)

type cachedResponse struct {
	contentType string
	body        []byte
}

// Server serves the stored report data as JSON. Successful GET responses are
// cached until they expire or Purge is called.
type Server struct {
	Echo  *echo.Echo
	cache *expirable.LRU[string, cachedResponse]
}

// uncached paths must always reflect the database
var uncached = map[string]bool{
	"/api/health":   true,
	"/api/runs":     true,
	"/api/runs/:id": true,
}

func NewServer() *Server {
	s := &Server{
		Echo:  echo.New(),
		cache: expirable.NewLRU[string, cachedResponse](cacheSize, nil, cacheTTL),
	}
	e := s.Echo
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(s.cacheLookup)
	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: s.skipCache,
		Handler: s.cacheStore,
	}))

	g := e.Group("/api")
	g.GET("/health", s.health)
	g.GET("/categories", s.categories)
	g.GET("/runs", s.runs)
	g.POST("/runs", s.queueRun)
	g.GET("/runs/:id", s.run)
	g.GET("/standings", s.standings)
	g.GET("/scores", s.scores)
	g.GET("/leaders", s.leaders)
	g.GET("/leaders/:category", s.leadersByCategory)
	g.GET("/players/:name", s.player)
	g.GET("/players/:name/boxscores", s.playerBoxscores)
	g.GET("/teams/:team/standings", s.teamStandings)
	g.GET("/teams/:team/offense", s.teamStats)
	g.GET("/teams/:team/defense", s.teamStats)
	g.GET("/matchup/:teamA/vs/:teamB", s.matchup)
	g.GET("/raw/:slug", s.raw)
	return s
}

// Purge drops every cached response. It is called when a run finishes.
func (s *Server) Purge() {
	s.cache.Purge()
}

func (s *Server) skipCache(c echo.Context) bool {
	return c.Request().Method != http.MethodGet || uncached[c.Path()]
}

func (s *Server) cacheLookup(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method != http.MethodGet {
			return next(c)
		}
		if hit, ok := s.cache.Get(c.Request().URL.RequestURI()); ok {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.Blob(http.StatusOK, hit.contentType, hit.body)
		}
		return next(c)
	}
}

func (s *Server) cacheStore(c echo.Context, _, resBody []byte) {
	if c.Response().Status != http.StatusOK {
		return
	}
	s.cache.Add(c.Request().URL.RequestURI(), cachedResponse{
		contentType: c.Response().Header().Get(echo.HeaderContentType),
		body:        resBody,
	})
}
