package handlers

// handlers expose the composition engine over HTTP: plan rendering,
// embed resolution, click transitions, reveal latching, click stats.

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fanlink/compose"
	"fanlink/controller"
	"fanlink/countdown"
	"fanlink/database"
	"fanlink/embed"
	"fanlink/links"
	"fanlink/metadata"
	"fanlink/pages"
	"fanlink/playback"
	"fanlink/sentryhelper"
)

type Manager struct {
	Composer   *compose.Composer
	Controller *controller.Controller
	Enricher   *metadata.Enricher
	DB         *database.Database
}

func NewManager(composer *compose.Composer, ctrl *controller.Controller, enricher *metadata.Enricher, db *database.Database) *Manager {
	return &Manager{
		Composer:   composer,
		Controller: ctrl,
		Enricher:   enricher,
		DB:         db,
	}
}

func (m *Manager) Register(router *gin.Engine) {
	router.POST("/pages/:page/plan", m.Plan)
	router.POST("/pages/:page/click", m.Click)
	router.POST("/pages/:page/reveal", m.Reveal)
	router.GET("/pages/:page/countdown", m.Countdown)
	router.GET("/pages/:page/playback", m.PlaybackState)
	router.POST("/pages/:page/playback/floating/close", m.CloseFloating)
	router.GET("/pages/:page/stats/top", m.TopLinks)
	router.GET("/embed/resolve", m.ResolveEmbed)
	router.GET("/embed/frame", m.EmbedFrame)
}

// Plan composes the render plan for a page from its stored layout.
// Malformed layout still renders; the engine substitutes the default
// sections instead of failing.
func (m *Manager) Plan(c *gin.Context) {
	var req compose.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan request"})
		return
	}
	req.PageID = controller.Handle(c.Param("page"))

	ctx, transaction := sentryhelper.StartPageTransaction(c.Request.Context(), "plan", req.PageID)
	defer transaction.Finish()

	plan := m.Composer.Compose(req)

	if m.Enricher != nil {
		for i := range plan.Sections {
			if len(plan.Sections[i].Links) == 0 {
				continue
			}
			plan.Sections[i].Links = m.Enricher.EnrichLinks(ctx, plan.Sections[i].Links)
		}
	}

	c.JSON(http.StatusOK, plan)
}

type clickRequest struct {
	ListID string     `json:"listId"`
	Link   links.Link `json:"link"`
}

type clickResponse struct {
	Action   playback.Action         `json:"action"`
	Inline   map[string]string       `json:"inline"`
	Floating *playback.FloatingState `json:"floating,omitempty"`
}

// Click runs one playback transition and reports the resulting state
// for the clicked list plus the page-wide floating slot.
func (m *Manager) Click(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid click request"})
		return
	}
	if req.ListID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listId is required"})
		return
	}

	session := m.Controller.GetSession(c.Param("page"))
	action := session.Playback.Click(req.ListID, req.Link)

	resp := clickResponse{
		Action:   action,
		Inline:   map[string]string{},
		Floating: session.Playback.Floating(),
	}
	if key, ok := session.Playback.InlineKey(req.ListID); ok {
		resp.Inline[req.ListID] = key
	}
	c.JSON(http.StatusOK, resp)
}

type revealRequest struct {
	SectionID string `json:"sectionId"`
}

// Reveal latches a section visible. The response tells the client
// whether this was the first trigger, i.e. whether to drop its
// observer.
func (m *Manager) Reveal(c *gin.Context) {
	var req revealRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SectionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sectionId is required"})
		return
	}

	session := m.Controller.GetSession(c.Param("page"))
	first := session.Reveal.MarkVisible(req.SectionID)
	c.JSON(http.StatusOK, gin.H{"visible": true, "first": first})
}

// Countdown reports the release gate for a page. The plain form
// answers with one snapshot; `stream=true` keeps the connection open
// and pushes a server-sent event per tick until the gate opens.
func (m *Manager) Countdown(c *gin.Context) {
	var releaseDate *time.Time
	if raw := c.Query("releaseDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "releaseDate must be RFC 3339"})
			return
		}
		releaseDate = &parsed
	}

	if c.Query("stream") != "true" {
		c.JSON(http.StatusOK, countdown.Take(releaseDate, time.Now()))
		return
	}

	gate := countdown.NewGate(releaseDate)
	go gate.Run(c.Request.Context())

	c.Header("Content-Type", "text/event-stream")
	c.Stream(func(w io.Writer) bool {
		snap, open := <-gate.Updates()
		if !open {
			return false
		}
		c.SSEvent("countdown", snap)
		return true
	})
}

func (m *Manager) PlaybackState(c *gin.Context) {
	session := m.Controller.GetSession(c.Param("page"))
	c.JSON(http.StatusOK, gin.H{
		"floating": session.Playback.Floating(),
	})
}

func (m *Manager) CloseFloating(c *gin.Context) {
	session := m.Controller.GetSession(c.Param("page"))
	session.Playback.CloseFloating()
	// Teardown is two-phase; the slot is hidden now and cleared
	// after the close delay.
	c.JSON(http.StatusOK, gin.H{
		"floating": session.Playback.Floating(),
	})
}

func (m *Manager) TopLinks(c *gin.Context) {
	if m.DB == nil {
		c.JSON(http.StatusOK, gin.H{"links": []database.TopLinkRecord{}})
		return
	}

	records, err := m.DB.GetTopLinks(controller.Handle(c.Param("page")), 10)
	if err != nil {
		log.Errorf("failed to load top links: %v", err)
		sentryhelper.CaptureException(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	if records == nil {
		records = []database.TopLinkRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"links": records})
}

// ResolveEmbed maps a platform URL to its embeddable source. An
// unresolvable pair is not an error: the caller renders a disabled
// control from the available=false response.
func (m *Manager) ResolveEmbed(c *gin.Context) {
	platform := links.Platform(c.Query("platform"))
	rawURL := c.Query("url")

	embedURL, ok := embed.ResolveURL(platform, rawURL)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"embedUrl":  embedURL,
		"allow":     embed.Allow,
	})
}

// EmbedFrame serves the iframe host page for a resolved embed.
func (m *Manager) EmbedFrame(c *gin.Context) {
	platform := links.Platform(c.Query("platform"))
	rawURL := c.Query("url")

	embedURL, ok := embed.ResolveURL(platform, rawURL)
	if !ok {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf(pages.EmbedUnavailable, html.EscapeString(rawURL))))
		return
	}
	// The resolvers already constrain their output, but the frame is
	// attribute context; escape anyway.
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(pages.EmbedFrame, embed.Allow, html.EscapeString(embedURL))))
}
