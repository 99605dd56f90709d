package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Sriram-PR/country-outline/pkg/models"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// handleGetCountryOutline handles the get_country_outline tool
func (s *Server) handleGetCountryOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country, err := request.RequireString("country")
	if err != nil {
		return mcp.NewToolResultError(utils.ErrMissingCountry.Error()), nil
	}

	result, err := s.outliner.Outline(ctx, country)
	if err != nil {
		s.log.WithField("country", country).Debugf("Tool call failed: %v", err)
		return mcp.NewToolResultError(utils.ErrorMessage(err)), nil
	}

	payload := models.ToolResult{
		Country:  result.Country,
		URL:      result.URL,
		Outline:  result.Outline,
		Headings: result.Document.All(),
	}
	return mcp.NewToolResultStructured(payload, formatJSON(payload)), nil
}

// formatJSON formats data as an indented JSON string
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("error formatting JSON: %v", err)
	}
	return string(bytes)
}
