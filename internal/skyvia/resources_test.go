package skyvia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

func TestTestConnectionSynthesizesSuccessOnEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/v1/workspaces/1/connections/2/test" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	result, err := client.TestConnection(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if result.Message == "" {
		t.Error("expected a synthesized success message")
	}
}

func TestTestConnectionSurfacesInBandFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Error: invalid credentials for host db.example.com","refresh":false}`))
	})

	_, err := client.TestConnection(context.Background(), 1, 2)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeInternal {
		t.Fatalf("expected a %s error, got %v", errors.CodeInternal, err)
	}
	if details, ok := typed.Details().(string); !ok || !strings.Contains(details, "invalid credentials") {
		t.Errorf("details = %v, should carry the diagnostic message", typed.Details())
	}
}

func TestTestAgentPassesThroughHealthyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/workspaces/1/agents/5/test" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Agent is online","refresh":true}`))
	})

	result, err := client.TestAgent(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("TestAgent: %v", err)
	}
	if result.Message != "Agent is online" || !result.Refresh {
		t.Errorf("result = %+v", result)
	}
}

func TestGetActiveBackupRunAbsentOn404(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	run, err := client.GetActiveBackupRun(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("GetActiveBackupRun: %v", err)
	}
	if run != nil {
		t.Errorf("run = %+v, want absent", run)
	}
}

func TestGetActiveAutomationExecutionPresent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/workspaces/1/automations/9/active" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"executionId":77,"date":"2024-06-01T10:00:00Z","state":"Running","testMode":false}`))
	})

	execution, err := client.GetActiveAutomationExecution(context.Background(), 1, 9)
	if err != nil {
		t.Fatalf("GetActiveAutomationExecution: %v", err)
	}
	if execution == nil || execution.ExecutionID != 77 || execution.State != "Running" {
		t.Errorf("execution = %+v", execution)
	}
}

func TestRunBackupRequiresReturnedState(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.RunBackup(context.Background(), 1, 3)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeShape {
		t.Fatalf("expected a %s error, got %v", errors.CodeShape, err)
	}
}

func TestBackupScheduleRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/workspaces/1/backups/3/schedule/enable" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"active":true}`))
	})

	schedule, err := client.EnableBackupSchedule(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("EnableBackupSchedule: %v", err)
	}
	if !schedule.Active {
		t.Error("schedule should be active")
	}
}

func TestInviteUserValidatesBeforeSending(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	cases := []InviteUserRequest{
		{Email: "not-an-email", UserType: "Member"},
		{Email: "user@example.com", UserType: "Owner"},
		{UserType: "Member"},
	}
	for _, invite := range cases {
		_, err := client.InviteUser(context.Background(), invite)
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeValidation {
			t.Errorf("InviteUser(%+v) = %v, want a %s error", invite, err, errors.CodeValidation)
		}
	}
	if requests != 0 {
		t.Errorf("%d requests issued, invalid invitations must not reach the wire", requests)
	}
}

func TestInviteUserOmitsEmptyWorkspaceList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if _, ok := payload["workspaces"]; ok {
			t.Error("workspaces should be omitted when empty")
		}
		if payload["email"] != "user@example.com" || payload["userType"] != "Member" {
			t.Errorf("payload = %v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"user@example.com","status":"Pending","invitationId":11}`))
	})

	status, err := client.InviteUser(context.Background(), InviteUserRequest{
		Email:    "user@example.com",
		UserType: "Member",
	})
	if err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	if status.InvitationID != 11 {
		t.Errorf("status = %+v", status)
	}
}

func TestRemoveAccountUserSendsEmailBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/account/users" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		json.Unmarshal(body, &payload)
		if payload["email"] != "user@example.com" {
			t.Errorf("body = %s", body)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.RemoveAccountUser(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("RemoveAccountUser: %v", err)
	}
}

func TestRemoveAccountUserRejectsBadEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be issued for an invalid email")
	})

	err := client.RemoveAccountUser(context.Background(), "not-an-email")
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected a %s error, got %v", errors.CodeValidation, err)
	}
}

func TestListEndpointTypesToleratesUnknownEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/endpoints/types" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"OData":1,"SQL":2,"BrandNewKind":99}`))
	})

	types, err := client.ListEndpointTypes(context.Background())
	if err != nil {
		t.Fatalf("ListEndpointTypes: %v", err)
	}
	if types["BrandNewKind"] != 99 || types["OData"] != 1 {
		t.Errorf("types = %v", types)
	}
}

func TestGetEndpointExecutionEscapesStringID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.EscapedPath(), "/v1/workspaces/1/endpoints/4/executions/") {
			t.Errorf("path = %q", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"date":"2024-06-01T10:00:00Z","url":"/odata/Orders","method":"GET","log":["served"]}`))
	})

	details, err := client.GetEndpointExecution(context.Background(), 1, 4, "req 01")
	if err != nil {
		t.Fatalf("GetEndpointExecution: %v", err)
	}
	if details.Method != "GET" || len(details.Log) != 1 {
		t.Errorf("details = %+v", details)
	}
}

func TestGetConnectionCarriesConnectorAndType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/workspaces/1/connections/3" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"name":"warehouse","connector":"postgresql","type":"Direct"}`))
	})

	details, err := client.GetConnection(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("GetConnection: %v", err)
	}
	if details.Connector != "postgresql" || details.Type != "Direct" {
		t.Errorf("details = %+v", details)
	}
}

func TestListIntegrationsToleratesMissingType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":4,"name":"nightly sync"}],"hasMore":false}`))
	})

	page, err := client.ListIntegrations(context.Background(), 1, PageParams{})
	if err != nil {
		t.Fatalf("ListIntegrations: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != 4 || page.Data[0].Type != "" {
		t.Errorf("page = %+v", page)
	}
}

func TestListEndpointExecutionsToleratesNullExecutionID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"executionId":null,"method":"POST","date":"2024-06-01T10:00:00Z"}],"hasMore":false}`))
	})

	page, err := client.ListEndpointExecutions(context.Background(), 1, 2, LogQuery{})
	if err != nil {
		t.Fatalf("ListEndpointExecutions: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ExecutionID != "" || page.Data[0].Method != "POST" {
		t.Errorf("page = %+v", page)
	}
}

func TestCancelIntegrationExecutionAddressesTheIntegration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/workspaces/1/integrations/6/executions/cancel" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.CancelIntegrationExecution(context.Background(), 1, 6); err != nil {
		t.Fatalf("CancelIntegrationExecution: %v", err)
	}
}

func TestKillIntegrationExecutionAddressesTheIntegration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/workspaces/1/integrations/6/executions/kill" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.KillIntegrationExecution(context.Background(), 1, 6); err != nil {
		t.Fatalf("KillIntegrationExecution: %v", err)
	}
}
