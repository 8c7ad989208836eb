package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fabmap/internal/application/commands"
	"fabmap/internal/ports"
)

// RegisterWriteTools adds all pin mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.PinRepository, session ports.Session) {
	s.AddTool(createTool(), createHandler(repo, session))
	s.AddTool(updateTool(), updateHandler(repo))
	s.AddTool(addFabricatorTool(), addFabricatorHandler(repo))
}

// --- create_pin ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_pin",
		mcp.WithDescription("Place a new pin titled \"New Pin\" at a coordinate. Nothing is written unless confirm is true."),
		mcp.WithNumber("lat",
			mcp.Description("Latitude in degrees (-90 to 90)"),
			mcp.Required(),
		),
		mcp.WithNumber("lng",
			mcp.Description("Longitude in degrees (-180 to 180)"),
			mcp.Required(),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to place the pin"),
		),
	)
}

func createHandler(repo ports.PinRepository, session ports.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lat, lng, err := requireLatLng(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewCreatePinCommand(repo, session, lat, lng, req.GetBool("confirm", false))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + formatPin(*result.Pin)), nil
	}
}

// --- update_pin ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_pin",
		mcp.WithDescription("Replace a pin's title and description. Both fields are written as given."),
		mcp.WithString("id",
			mcp.Description("Pin ID"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title, may be empty"),
		),
		mcp.WithString("description",
			mcp.Description("New description, may be empty"),
		),
	)
}

func updateHandler(repo ports.PinRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdatePinCommand(repo,
			req.GetString("id", ""),
			req.GetString("title", ""),
			req.GetString("description", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_fabricator ---

func addFabricatorTool() mcp.Tool {
	return mcp.NewTool("add_fabricator",
		mcp.WithDescription("Attach a fabricator contact to a pin."),
		mcp.WithString("pin_id",
			mcp.Description("Pin ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Company name"),
			mcp.Required(),
		),
		mcp.WithString("address",
			mcp.Description("Postal address"),
			mcp.Required(),
		),
		mcp.WithString("phone",
			mcp.Description("Phone number, optional"),
		),
	)
}

func addFabricatorHandler(repo ports.PinRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddFabricatorCommand(repo,
			req.GetString("pin_id", ""),
			req.GetString("name", ""),
			req.GetString("address", ""),
			req.GetString("phone", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
