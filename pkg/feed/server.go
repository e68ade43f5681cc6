package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/zoeyai/djwatch/internal/logger"
)

// Server 读数 HTTP 服务
//
//	GET /api/now     最新读数
//	GET /api/health  服务状态
//	GET /api/stream  WebSocket 推送每次读数
type Server struct {
	router   *mux.Router
	hub      *Hub
	upgrader websocket.Upgrader
	log      *logger.Logger
	http     *http.Server
}

// NewServer 创建读数服务
func NewServer(hub *Hub, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default().Component("feed")
	}

	s := &Server{
		router: mux.NewRouter(),
		hub:    hub,
		log:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/now", s.handleNow).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/stream", s.handleStream)
}

// Handler HTTP 处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 监听 addr 并在后台提供服务，返回实际监听地址
func (s *Server) Start(addr string) (net.Addr, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("读数服务监听失败 %s: %w", addr, err)
	}

	s.http = &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.http.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("读数服务退出: %v", err)
		}
	}()

	s.log.Info("读数服务已启动: http://%s/api/now", lis.Addr())
	return lis.Addr(), nil
}

// Shutdown 关闭订阅并停止服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	u, ok := s.hub.Latest()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "尚无读数"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	u, ok := s.hub.Latest()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"alive":       ok && u.Alive,
		"subscribers": s.hub.Subscribers(),
	})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket 升级失败: %v", err)
		return
	}
	defer conn.Close()

	// 先订阅再发送最新读数，避免漏掉两者之间的更新
	updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(updates)

	if u, ok := s.hub.Latest(); ok {
		if err := conn.WriteJSON(u); err != nil {
			s.log.Debug("WebSocket 写入失败: %v", err)
			return
		}
	}

	// 客户端断开时结束推送
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(u); err != nil {
				s.log.Debug("WebSocket 写入失败: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
