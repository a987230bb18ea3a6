package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

func doProjectsList(ctx context.Context, cfg cliConfig, q string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "projects.list", map[string]any{"q": q, "limit": 200}, out)
	}
	client := newAPIClient(cfg.Server)
	path := "/api/projects"
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	return client.request(ctx, http.MethodGet, path, nil, out)
}

func doProjectsCreate(ctx context.Context, cfg cliConfig, name, clientName, unit string, out any) error {
	in := map[string]any{"name": name, "client": clientName, "unit": unit}
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "projects.create", in, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, "/api/projects", in, out)
}

func doProjectsGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "projects.get", map[string]any{"id": id}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodGet, projectPath(id, ""), nil, out)
}

func doStandardsList(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "standards.list", map[string]any{"project_id": projectID}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodGet, projectPath(projectID, "/standards"), nil, out)
}

func doStandardsCreate(ctx context.Context, cfg cliConfig, in domain.Standard, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "standards.create", in, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, projectPath(in.ProjectID, "/standards"), in, out)
}

func doStandardsDefaults(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "standards.defaults", map[string]any{"project_id": projectID}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, projectPath(projectID, "/standards/defaults"), nil, out)
}

func doStandardsDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "standards.delete", map[string]any{"id": id}, nil)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodDelete, "/api/standards/"+uintToString(id), nil, nil)
}

func doModulesList(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "modules.list", map[string]any{"project_id": projectID}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodGet, projectPath(projectID, "/modules"), nil, out)
}

func doModulesCreate(ctx context.Context, cfg cliConfig, in domain.Module, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "modules.create", in, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, projectPath(in.ProjectID, "/modules"), in, out)
}

func doModulesUpdate(ctx context.Context, cfg cliConfig, in domain.Module, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "modules.update", in, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPut, "/api/modules/"+uintToString(in.ID), in, out)
}

func doModulesDelete(ctx context.Context, cfg cliConfig, id uint) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "modules.delete", map[string]any{"id": id}, nil)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodDelete, "/api/modules/"+uintToString(id), nil, nil)
}

func doModulesDuplicate(ctx context.Context, cfg cliConfig, id uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "modules.duplicate", map[string]any{"id": id}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, "/api/modules/"+uintToString(id)+"/duplicate", nil, out)
}

func doOutputsGenerate(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "outputs.generate", map[string]any{"project_id": projectID}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodPost, projectPath(projectID, "/generate"), nil, out)
}

func doOutputsGet(ctx context.Context, cfg cliConfig, projectID uint, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "outputs.get", map[string]any{"project_id": projectID}, out)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodGet, projectPath(projectID, "/outputs"), nil, out)
}

func doRunsList(ctx context.Context, cfg cliConfig, projectID uint, limit int, out any) error {
	if cfg.Transport == "uds" {
		return newRPCClient(cfg.Socket).call(ctx, "runs.list", map[string]any{"project_id": projectID, "limit": limit}, out)
	}
	path := projectPath(projectID, "/runs")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return newAPIClient(cfg.Server).request(ctx, http.MethodGet, path, nil, out)
}

func projectPath(id uint, suffix string) string {
	return "/api/projects/" + uintToString(id) + suffix
}

func uintToString(v uint) string {
	return fmt.Sprintf("%d", v)
}
