package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jinford/gpt3-relay/internal/core/blocks"
	"github.com/jinford/gpt3-relay/internal/core/relay"
)

const (
	// maxBodyBytes はリクエストボディの上限
	maxBodyBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// BlockRequest はブロック実行リクエスト
type BlockRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// BlockResponse はブロック実行結果
type BlockResponse struct {
	Value string `json:"value"`
}

// CredentialRequest はAPIキー設定リクエスト
type CredentialRequest struct {
	APIKey string `json:"apiKey"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server はブロック実行環境から Relay を呼び出すための HTTP アダプタ
type Server struct {
	extension *blocks.Extension
	relay     *relay.Relay
	logger    *slog.Logger
}

// NewServer は新しい Server を作成する
func NewServer(ext *blocks.Extension, r *relay.Relay, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		extension: ext,
		relay:     r,
		logger:    logger,
	}
}

// Handler はルーティング済みの http.Handler を返す
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /info", s.handleInfo)
	mux.HandleFunc("POST /blocks/{opcode}", s.handleBlock)
	mux.HandleFunc("PUT /credential", s.handleCredential)
	return mux
}

// ListenAndServe は ctx がキャンセルされるまでサーバを起動する
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTPサーバを起動しました", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("HTTPサーバを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバの停止に失敗: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.extension.Info())
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	opcode := r.PathValue("opcode")

	// 空のボディは引数なしとして扱う
	var req BlockRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	value, err := s.extension.Execute(r.Context(), opcode, req.Arguments)
	if err != nil {
		if errors.Is(err, blocks.ErrUnknownOpcode) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("ブロックの実行に失敗しました", "opcode", opcode, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, BlockResponse{Value: value})
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	var req CredentialRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	s.relay.SetCredential(req.APIKey)
	s.logger.Info("APIキーを更新しました", "usable", s.relay.HasCredential())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("レスポンスの書き込みに失敗しました", "error", err)
	}
}
