package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"family_law_portal_go/models"
	"family_law_portal_go/services"

	"github.com/labstack/echo/v4"
)

// streamKeepAlive is how often an idle stream gets a comment line
var streamKeepAlive = 25 * time.Second

// streamCloser ends every open notification stream at once
type streamCloser struct {
	once sync.Once
	done chan struct{}
}

func newStreamCloser() *streamCloser {
	return &streamCloser{done: make(chan struct{})}
}

func (s *streamCloser) Close() {
	s.once.Do(func() { close(s.done) })
}

var streams = newStreamCloser()

// CloseStreams ends the open notification streams so a graceful shutdown
// does not wait on them. Register it with http.Server.RegisterOnShutdown.
func CloseStreams() {
	streams.Close()
}

type notifyRequest struct {
	ClientName  string `json:"clientName" form:"clientName"`
	ClientEmail string `json:"clientEmail" form:"clientEmail"`
}

// NotifyLawyerHandler emails the lawyer about a new client and records the
// notification event
func NotifyLawyerHandler(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	_, err := notificationService(getConfig(c)).NotifyLawyer(c.Request().Context(), req.ClientName, req.ClientEmail)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "Notification sent"})
	case errors.Is(err, services.ErrMissingNotifyFields):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrMailNotConfigured):
		log.Printf("[NOTIFY] %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		log.Printf("[NOTIFY] %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send notification"})
	}
}

// LatestNotificationHandler returns the newest notification event, or null,
// with the unread count
func LatestNotificationHandler(c echo.Context) error {
	ctx := c.Request().Context()
	svc := notificationService(getConfig(c))
	event, err := svc.Latest(ctx)
	if err != nil {
		log.Printf("[NOTIFY] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}
	unread, err := svc.UnreadCount(ctx)
	if err != nil {
		log.Printf("[NOTIFY] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"notification": event, "unread": unread})
}

// MarkNotificationsReadHandler clears the unread indicator
func MarkNotificationsReadHandler(c echo.Context) error {
	if err := notificationService(getConfig(c)).MarkAllAsRead(c.Request().Context()); err != nil {
		log.Printf("[NOTIFY] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notifications")
	}
	return c.NoContent(http.StatusNoContent)
}

// NotificationStreamHandler pushes new notification events as Server-Sent
// Events. The current latest event is announced on connect; after that an
// event is sent only when its id differs from the last one sent.
func NotificationStreamHandler(c echo.Context) error {
	ctx := c.Request().Context()

	events, cancel, err := deps.Bus.Subscribe(ctx)
	if err != nil {
		log.Printf("[NOTIFY] Subscribe failed: %v", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Notification stream unavailable")
	}
	defer cancel()

	services.NotificationStreams.Inc()
	defer services.NotificationStreams.Dec()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	var watcher services.LatestWatcher
	if latest, err := notificationService(getConfig(c)).Latest(ctx); err != nil {
		log.Printf("[NOTIFY] %v", err)
	} else if latest != nil {
		watcher.Observe(*latest)
		if err := writeEvent(res, *latest); err != nil {
			return nil
		}
	}

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	closing := streams.done
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closing:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !watcher.Observe(event) {
				continue
			}
			if err := writeEvent(res, event); err != nil {
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeEvent(res *echo.Response, event models.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "id: %s\nevent: notification\ndata: %s\n\n", event.ID, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
