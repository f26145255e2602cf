package seed

import (
	"time"

	"go-portfolio-app/internal/data"
)

func str(s string) *string { return &s }

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 9, 0, 0, 0, time.UTC)
	return &t
}

// Projects is the fixture set written to the projects table.
var Projects = []data.Project{
	{
		Title:           "E-Commerce Platform",
		Slug:            "e-commerce-platform",
		Description:     "A full-stack storefront with cart, checkout and an order dashboard.",
		LongDescription: str("Product catalogue, cart persistence, payment provider integration and an admin dashboard for orders and inventory."),
		Category:        "Full Stack",
		Technologies:    data.StringList{"Go", "MySQL", "React", "Stripe"},
		Features:        data.StringList{"Payment processing", "Inventory tracking", "Order dashboard"},
		GithubURL:       str("https://github.com/example/e-commerce-platform"),
		DemoURL:         str("https://shop.example.com"),
		Status:          "Completed",
		Featured:        true,
	},
	{
		Title:        "Task Management App",
		Slug:         "task-management-app",
		Description:  "Collaborative boards with real-time updates and due-date reminders.",
		Category:     "Web App",
		Technologies: data.StringList{"TypeScript", "Node.js", "PostgreSQL", "WebSockets"},
		Features:     data.StringList{"Real-time sync", "Drag and drop boards", "Email reminders"},
		GithubURL:    str("https://github.com/example/task-manager"),
		Status:       "Completed",
		Featured:     true,
	},
	{
		Title:        "Weather Dashboard",
		Slug:         "weather-dashboard",
		Description:  "Forecasts and historical charts for saved locations.",
		Category:     "Frontend",
		Technologies: data.StringList{"React", "Chart.js", "OpenWeather API"},
		Features:     data.StringList{"Location search", "7-day forecast", "Historical charts"},
		DemoURL:      str("https://weather.example.com"),
		Status:       "Completed",
	},
	{
		Title:        "AI Content Generator",
		Slug:         "ai-content-generator",
		Description:  "Drafts marketing copy from short prompts with tone presets.",
		Category:     "AI/ML",
		Technologies: data.StringList{"Python", "FastAPI", "OpenAI API"},
		Features:     data.StringList{"Tone presets", "Prompt history", "Export to Markdown"},
		Status:       "In Progress",
		Featured:     true,
	},
	{
		Title:        "Fitness Tracker Mobile App",
		Slug:         "fitness-tracker-mobile-app",
		Description:  "Workout logging with progress charts and offline support.",
		Category:     "Mobile",
		Technologies: data.StringList{"React Native", "SQLite", "Expo"},
		Features:     data.StringList{"Offline logging", "Progress charts", "Workout templates"},
		GithubURL:    str("https://github.com/example/fitness-tracker"),
		Status:       "Completed",
	},
	{
		Title:        "Real Estate Listing Portal",
		Slug:         "real-estate-listing-portal",
		Description:  "Searchable property listings with map view and saved searches.",
		Category:     "Full Stack",
		Technologies: data.StringList{"Go", "Redis", "Vue", "Mapbox"},
		Features:     data.StringList{"Map search", "Saved searches", "Agent contact forms"},
		Status:       "Completed",
	},
}

// BlogPosts is the fixture set written to the blog_posts table.
var BlogPosts = []data.BlogPost{
	{
		Title:       "Building Scalable Web Applications",
		Slug:        "building-scalable-web-applications",
		Excerpt:     "Patterns for keeping a web backend fast as traffic grows.",
		Content:     "## Start simple\n\nMeasure before you shard. Most applications scale a long way on a single well-indexed database.\n",
		Category:    "Architecture",
		Tags:        data.StringList{"scalability", "architecture", "backend"},
		ReadTime:    str("8 min read"),
		PublishedAt: day(2024, time.January, 15),
		Featured:    true,
	},
	{
		Title:       "Getting Started with Go",
		Slug:        "getting-started-with-go",
		Excerpt:     "A practical tour of the language for developers coming from dynamic languages.",
		Content:     "## Why Go\n\nSmall language, fast builds and a standard library that covers most server work.\n",
		Category:    "Tutorial",
		Tags:        data.StringList{"go", "beginners"},
		ReadTime:    str("6 min read"),
		PublishedAt: day(2024, time.February, 2),
	},
	{
		Title:       "Modern CSS Techniques",
		Slug:        "modern-css-techniques",
		Excerpt:     "Grid, container queries and custom properties in everyday layouts.",
		Content:     "## Container queries\n\nComponents can finally respond to the space they are given.\n",
		Category:    "Frontend",
		Tags:        data.StringList{"css", "frontend", "design"},
		ReadTime:    str("5 min read"),
		PublishedAt: day(2024, time.February, 20),
	},
	{
		Title:       "Database Design Best Practices",
		Slug:        "database-design-best-practices",
		Excerpt:     "Normalisation, indexing and migrations without regrets.",
		Content:     "## Index for your queries\n\nLook at the access paths first, then design the indexes.\n",
		Category:    "Database",
		Tags:        data.StringList{"sql", "database", "backend"},
		ReadTime:    str("10 min read"),
		PublishedAt: day(2024, time.March, 8),
		Featured:    true,
	},
	{
		Title:       "Securing Your REST API",
		Slug:        "securing-your-rest-api",
		Excerpt:     "Authentication, rate limiting and input validation for public endpoints.",
		Content:     "## Validate everything\n\nNever trust the client. Validate on the server even when the UI already does.\n",
		Category:    "Security",
		Tags:        data.StringList{"security", "api", "backend"},
		ReadTime:    str("7 min read"),
		PublishedAt: day(2024, time.April, 1),
	},
	{
		Title:       "Deploying with Docker",
		Slug:        "deploying-with-docker",
		Excerpt:     "From a local Dockerfile to a repeatable production deployment.",
		Content:     "## Multi-stage builds\n\nKeep the runtime image small by building in one stage and copying the binary into another.\n",
		Category:    "DevOps",
		Tags:        data.StringList{"docker", "devops", "deployment"},
		ReadTime:    str("9 min read"),
		PublishedAt: day(2024, time.April, 22),
		ExternalURL: str("https://dev.to/example/deploying-with-docker"),
	},
}
