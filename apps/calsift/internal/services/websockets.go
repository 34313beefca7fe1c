package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"github.com/xdoubleu/essentia/v2/pkg/threading"

	"calsift.app/apps/calsift/internal/dtos"
)

// WebSocketService streams catalog refresh progress to connected clients,
// one topic per refresh job. Subscribers get the current state on connect
// and an update whenever a rebuild starts or finishes.
type WebSocketService struct {
	allowedOrigins []string
	handler        *wstools.WebSocketHandler[dtos.SubscribeDto]
	jobQueue       *threading.JobQueue
	refreshTopics  map[string]*wstools.Topic
}

func NewWebSocketService(
	logger *slog.Logger,
	allowedOrigins []string,
	jobQueue *threading.JobQueue,
) *WebSocketService {
	service := WebSocketService{
		allowedOrigins: allowedOrigins,
		handler:        nil,
		jobQueue:       jobQueue,
		refreshTopics:  make(map[string]*wstools.Topic),
	}

	handler := wstools.CreateWebSocketHandler[dtos.SubscribeDto](
		logger,
		1,
		100, //nolint:mnd //no magic number
	)

	service.handler = &handler

	return &service
}

func (service *WebSocketService) Handler() http.HandlerFunc {
	return service.handler.Handler()
}

// PushRefreshState is wired as the job queue callback, jobID doubles as
// the topic name.
func (service *WebSocketService) PushRefreshState(
	jobID string,
	isRunning bool,
	lastRunTime *time.Time,
) {
	topic, ok := service.refreshTopics[jobID]
	if !ok {
		return
	}

	topic.EnqueueEvent(dtos.RefreshStateDto{
		IsRefreshing: isRunning,
		LastRefresh:  lastRunTime,
	})
}

func (service *WebSocketService) RegisterTopics(jobIDs []string) {
	for _, jobID := range jobIDs {
		topic, err := service.handler.AddTopic(
			jobID,
			service.allowedOrigins,
			func(_ context.Context, tp *wstools.Topic) (any, error) {
				return service.refreshState(tp), nil
			},
		)
		if err != nil {
			panic(err)
		}
		service.refreshTopics[jobID] = topic
	}
}

func (service *WebSocketService) refreshState(
	topic *wstools.Topic,
) dtos.RefreshStateDto {
	isRefreshing, lastRefresh := service.jobQueue.FetchState(topic.Name)

	return dtos.RefreshStateDto{
		IsRefreshing: isRefreshing,
		LastRefresh:  lastRefresh,
	}
}
