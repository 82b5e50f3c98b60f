package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	portalUsecase "github.com/tribunatech/casevault/internal/portal/usecase"
)

const cliRemoteAddr = "cli"

// RunIssuePortalToken issues a portal access token for a client and case pair
// and prints the plain token. The token is shown only once; the database
// stores a hash.
func RunIssuePortalToken(
	ctx context.Context,
	accessUseCase portalUsecase.AccessUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientID, caseID string,
	format string,
) error {
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	caseUUID, err := uuid.Parse(caseID)
	if err != nil {
		return fmt.Errorf("invalid case id: %w", err)
	}

	access, plainToken, err := accessUseCase.Issue(ctx, portalUsecase.IssueAccessInput{
		ClientID:   clientUUID,
		CaseID:     caseUUID,
		RemoteAddr: cliRemoteAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to issue portal token: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"access_id": access.ID,
			"client_id": access.ClientID,
			"case_id":   access.CaseID,
			"token":     plainToken,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintln(writer, "Portal access issued. Share the token with the client; it is not shown again.")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "Access ID: %s\n", access.ID)
		_, _ = fmt.Fprintf(writer, "Client ID: %s\n", access.ClientID)
		_, _ = fmt.Fprintf(writer, "Case ID:   %s\n", access.CaseID)
		_, _ = fmt.Fprintf(writer, "Token:     %s\n", plainToken)
	}

	logger.Info("portal token issued",
		slog.String("access_id", access.ID.String()),
		slog.String("client_id", access.ClientID.String()),
		slog.String("case_id", access.CaseID.String()),
	)

	return nil
}

// RunRevokePortalToken revokes the active portal access for a client and case pair.
func RunRevokePortalToken(
	ctx context.Context,
	accessUseCase portalUsecase.AccessUseCase,
	logger *slog.Logger,
	writer io.Writer,
	clientID, caseID string,
) error {
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	caseUUID, err := uuid.Parse(caseID)
	if err != nil {
		return fmt.Errorf("invalid case id: %w", err)
	}

	if err := accessUseCase.Revoke(ctx, portalUsecase.RevokeAccessInput{
		ClientID:   clientUUID,
		CaseID:     caseUUID,
		RemoteAddr: cliRemoteAddr,
	}); err != nil {
		return fmt.Errorf("failed to revoke portal token: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Portal access revoked.")

	logger.Info("portal token revoked",
		slog.String("client_id", clientUUID.String()),
		slog.String("case_id", caseUUID.String()),
	)

	return nil
}
