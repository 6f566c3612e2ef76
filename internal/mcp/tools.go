package mcp

import "github.com/mark3labs/mcp-go/mcp"

var projectCreateToolDef = mcp.NewTool("project_create",
	mcp.WithDescription("Create a photography project: fixed folders, numbered capture folders, "+
		"and a session database copied from the template with every capture folder registered."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Project name; also the session file name")),
	mcp.WithNumber("folder_count", mcp.Required(), mcp.Description("Number of capture folders (1 or more)")),
	mcp.WithString("location", mcp.Required(), mcp.Description("Existing, writable parent directory")),
)

var projectPlanToolDef = mcp.NewTool("project_plan",
	mcp.WithDescription("Show the directories, session file and rows project_create would produce. Writes nothing."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
	mcp.WithNumber("folder_count", mcp.Required(), mcp.Description("Number of capture folders (1 or more)")),
	mcp.WithString("location", mcp.Required(), mcp.Description("Parent directory")),
)

var sessionPatchToolDef = mcp.NewTool("session_patch",
	mcp.WithDescription("Register numbered capture folders in an existing session database. "+
		"Accepts the session file or its project directory."),
	mcp.WithString("database_path", mcp.Required(), mcp.Description("Session database file or project directory")),
	mcp.WithNumber("folder_count", mcp.Required(), mcp.Description("Number of capture folders (1 or more)")),
	mcp.WithBoolean("skip_existing", mcp.Description("Skip folders that are already registered")),
)

var sessionInspectToolDef = mcp.NewTool("session_inspect",
	mcp.WithDescription("List the path locations registered in a session database."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("database_path", mcp.Required(), mcp.Description("Session database file or project directory")),
)
