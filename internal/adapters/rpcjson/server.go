package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atvirokodosprendimai/cabinetry/internal/application"
	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/planning"
	"go.uber.org/zap"
)

type Server struct {
	service  *application.PlanService
	logger   *zap.Logger
	listener net.Listener
	path     string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeAppError      = 40000
	codeNotFound      = 40400
	codeInternalError = 50000
)

func Start(path string, service *application.PlanService, logger *zap.Logger) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		service:  service,
		logger:   logger,
		listener: ln,
		path:     path,
		ctx:      ctx,
		cancel:   cancel,
		conns:    make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.ctx.Err() != nil {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Close stops accepting, closes open connections and waits for their
// handlers to return.
func (s *Server) Close() error {
	s.cancel()
	err := s.listener.Close()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(s.ctx, req)
		if resp.Error != nil {
			s.logger.Debug("rpc error", zap.String("method", req.Method), zap.Int("code", resp.Error.Code), zap.String("message", resp.Error.Message))
		}
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

type idParams struct {
	ID uint `json:"id"`
}

type projectParams struct {
	ProjectID uint `json:"project_id"`
	Limit     int  `json:"limit"`
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32600, Message: "invalid request"}, ID: req.ID}
	}

	switch req.Method {
	case "plan.compute":
		var p struct {
			Modules   []domain.Module   `json:"modules"`
			Standards []domain.Standard `json:"standards"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.Compute(ctx, p.Modules, p.Standards)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, out)

	case "projects.list":
		var p struct {
			Q     string `json:"q"`
			Limit int    `json:"limit"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		list, err := s.service.ListProjects(ctx, p.Q, p.Limit)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, list)
	case "projects.create":
		var p struct {
			Name   string `json:"name"`
			Client string `json:"client"`
			Unit   string `json:"unit"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.CreateProject(ctx, p.Name, p.Client, p.Unit)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, v)
	case "projects.get":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.GetProject(ctx, p.ID)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, v)

	case "standards.list":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		list, err := s.service.ListStandards(ctx, p.ProjectID)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, list)
	case "standards.create":
		var p domain.Standard
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.CreateStandard(ctx, p)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, v)
	case "standards.defaults":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		list, err := s.service.LoadDefaultStandards(ctx, p.ProjectID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, list)
	case "standards.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteStandard(ctx, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"deleted": p.ID})

	case "modules.list":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		list, err := s.service.ListModules(ctx, p.ProjectID)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, list)
	case "modules.create":
		p := planning.DefaultModule()
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.CreateModule(ctx, p)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, v)
	case "modules.update":
		var p domain.Module
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.UpdateModule(ctx, p)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, v)
	case "modules.delete":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteModule(ctx, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"deleted": p.ID})
	case "modules.duplicate":
		var p idParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		v, err := s.service.DuplicateModule(ctx, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, v)

	case "outputs.generate":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		set, err := s.service.Generate(ctx, p.ProjectID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, set)
	case "outputs.get":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		set, err := s.service.GetOutputs(ctx, p.ProjectID)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, set)
	case "runs.list":
		var p projectParams
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		runs, err := s.service.ListGenerationRuns(ctx, p.ProjectID, p.Limit)
		if err != nil {
			return internalError(req.ID, err)
		}
		return result(req.ID, runs)
	}

	return response{JSONRPC: "2.0", Error: &rpcError{Code: -32601, Message: "method not found"}, ID: req.ID}
}

func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return true
	}
	return json.Unmarshal(raw, out) == nil
}

func result(id any, v any) response {
	return response{JSONRPC: "2.0", Result: v, ID: id}
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: -32602, Message: "invalid params"}, ID: id}
}

func appError(id any, err error) response {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(id, err)
	}
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeAppError, Message: err.Error()}, ID: id}
}

func internalError(id any, err error) response {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(id, err)
	}
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInternalError, Message: fmt.Sprintf("internal error: %v", err)}, ID: id}
}

func notFound(id any, err error) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeNotFound, Message: err.Error()}, ID: id}
}
