package server

import (
	"net/http"

	"siteforge/internal/gateway/handler"
	"siteforge/internal/gateway/middleware"
)

func NewMux(chat *handler.ChatHandler, projects *handler.ProjectHandler, archive *handler.ArchiveHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/chat", chat.HandleChat)
	mux.HandleFunc("/v1/chat/ws", chat.HandleChatWS)
	mux.HandleFunc("/v1/projects", projects.HandleList)
	mux.HandleFunc("/v1/projects/", projects.HandleGet)
	mux.HandleFunc("/v1/archive/", archive.HandleArchive)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.CORS(mux)
}
