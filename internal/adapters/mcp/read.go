package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fabmap/internal/application"
	"fabmap/internal/application/commands"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// RegisterReadTools adds all read-only pin tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.PinRepository, geocoder ports.Geocoder) {
	s.AddTool(listTool(), listHandler(repo))
	s.AddTool(nearbyTool(), nearbyHandler(repo))
	s.AddTool(searchLocationTool(), searchLocationHandler(geocoder))
}

// --- list_pins ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_pins",
		mcp.WithDescription("List every pin, newest first, with its fabricators."),
	)
}

func listHandler(repo ports.PinRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pins, err := commands.NewListPinsCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(pins, formatPin)
	}
}

// --- nearby_pins ---

func nearbyTool() mcp.Tool {
	return mcp.NewTool("nearby_pins",
		mcp.WithDescription(fmt.Sprintf("List pins within %.0f km of a coordinate, nearest first.", domain.NearbyRadiusKm)),
		mcp.WithNumber("lat",
			mcp.Description("Latitude in degrees (-90 to 90)"),
			mcp.Required(),
		),
		mcp.WithNumber("lng",
			mcp.Description("Longitude in degrees (-180 to 180)"),
			mcp.Required(),
		),
	)
}

func nearbyHandler(repo ports.PinRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lat, lng, err := requireLatLng(req)
		if err != nil {
			return toolError(err)
		}
		marker := application.Coordinate{Lat: lat, Lng: lng}
		if err := application.ValidateCoordinate(marker.Lat, marker.Lng); err != nil {
			return toolError(err)
		}

		pins, err := commands.NewListPinsCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		near := application.NearbyPins(pins, marker)
		if len(near) == 0 {
			return mcp.NewToolResultText("No pins nearby."), nil
		}
		var sb strings.Builder
		for _, p := range near {
			fmt.Fprintf(&sb, "%.2f km  %s\n", domain.DistanceBetween(marker, p.Position()), formatPin(p))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search_location ---

func searchLocationTool() mcp.Tool {
	return mcp.NewTool("search_location",
		mcp.WithDescription("Geocode free text into candidate places with coordinates."),
		mcp.WithString("query",
			mcp.Description("Place name or address"),
			mcp.Required(),
		),
	)
}

func searchLocationHandler(geocoder ports.Geocoder) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if strings.TrimSpace(query) == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		places, err := commands.NewSearchLocationCommand(geocoder, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(places, func(p application.Place) string {
			return fmt.Sprintf("%s  %s", p.Position, p.Label)
		})
	}
}

// --- helpers ---

// requireLatLng reads both coordinates; a missing one is an error, never zero.
func requireLatLng(req mcp.CallToolRequest) (float64, float64, error) {
	lat, err := req.RequireFloat("lat")
	if err != nil {
		return 0, 0, err
	}
	lng, err := req.RequireFloat("lng")
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatPin(p application.Pin) string {
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	s := fmt.Sprintf("%s  %s  %s", p.ID, p.Position(), title)
	for _, f := range p.Fabricators {
		s += "\n    " + formatFabricator(f)
	}
	return s
}

func formatFabricator(f application.Fabricator) string {
	s := f.Name + ", " + f.Address
	if f.Phone != "" {
		s += ", " + f.Phone
	}
	return s
}
