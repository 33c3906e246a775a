package registry

// catalog is the built-in component palette. Defaults double as the property
// contract for each type: the property-editing surface and the renderers both
// read from here.
var catalog = []Definition{
	// Text content
	{
		Type:  "heading",
		Label: "Heading",
		Defaults: map[string]any{
			"text":      "Heading",
			"level":     "h2",
			"textAlign": "left",
			"color":     "#111827",
		},
		Render: renderHeading,
	},
	{
		Type:  "text",
		Label: "Text",
		Defaults: map[string]any{
			"text":      "Write something here.",
			"textAlign": "left",
			"color":     "#374151",
			"fontSize":  16,
		},
		Render: renderText,
	},
	{
		Type:  "quote",
		Label: "Quote",
		Defaults: map[string]any{
			"text":   "A memorable quote.",
			"author": "",
		},
		Render: renderQuote,
	},
	{
		Type:  "list",
		Label: "List",
		Defaults: map[string]any{
			"items":   []any{"First item", "Second item"},
			"ordered": false,
		},
		Render: renderList,
	},
	{
		Type:  "badge",
		Label: "Badge",
		Defaults: map[string]any{
			"text":       "New",
			"background": "#2563eb",
			"color":      "#ffffff",
		},
		Render: renderBadge,
	},
	{
		Type:  "button",
		Label: "Button",
		Defaults: map[string]any{
			"text":       "Click me",
			"url":        "#",
			"background": "#2563eb",
			"color":      "#ffffff",
			"align":      "left",
		},
		Render: renderButton,
	},
	{
		Type:  "link",
		Label: "Link",
		Defaults: map[string]any{
			"text":      "Learn more",
			"url":       "#",
			"color":     "#2563eb",
			"newTab":    false,
			"underline": true,
		},
		Render: renderLink,
	},
	{
		Type:  "divider",
		Label: "Divider",
		Defaults: map[string]any{
			"color":     "#e5e7eb",
			"thickness": 1,
		},
		Render: renderDivider,
	},
	{
		Type:  "spacer",
		Label: "Spacer",
		Defaults: map[string]any{
			"height": 32,
		},
		Render: renderSpacer,
	},

	// Layout
	{
		Type:      "container",
		Label:     "Container",
		Container: true,
		Defaults: map[string]any{
			"background": "",
			"padding":    16,
			"maxWidth":   0,
		},
		Render: renderContainer,
	},
	{
		Type:      "columns",
		Label:     "Columns",
		Container: true,
		Defaults: map[string]any{
			"count": 2,
			"gap":   16,
		},
		Render: renderColumns,
	},
	{
		Type:      "section",
		Label:     "Section",
		Container: true,
		Defaults: map[string]any{
			"background": "",
			"padding":    48,
		},
		Render: renderSection,
	},
	{
		Type:      "card",
		Label:     "Card",
		Container: true,
		Defaults: map[string]any{
			"background": "#ffffff",
			"padding":    24,
			"shadow":     true,
		},
		Render: renderCard,
	},
	{
		Type:  "navbar",
		Label: "Navigation Bar",
		Defaults: map[string]any{
			"brand":      "My Site",
			"links":      []any{},
			"background": "#ffffff",
			"color":      "#111827",
		},
		Render: renderNavbar,
	},
	{
		Type:  "hero",
		Label: "Hero",
		Defaults: map[string]any{
			"title":           "Welcome",
			"subtitle":        "Build something great.",
			"buttonText":      "",
			"buttonUrl":       "#",
			"backgroundImage": "",
			"background":      "#111827",
			"color":           "#ffffff",
		},
		Render: renderHero,
	},
	{
		Type:  "footer",
		Label: "Footer",
		Defaults: map[string]any{
			"text":       "",
			"links":      []any{},
			"background": "#111827",
			"color":      "#9ca3af",
		},
		Render: renderFooter,
	},

	// Media
	{
		Type:  "image",
		Label: "Image",
		Defaults: map[string]any{
			"src":    "",
			"alt":    "",
			"width":  "100%",
			"radius": 0,
		},
		Render: renderImage,
	},
	{
		Type:  "video",
		Label: "Video",
		Defaults: map[string]any{
			"src":      "",
			"controls": true,
			"width":    "100%",
		},
		Render: renderVideo,
	},
	{
		Type:  "embed",
		Label: "Embed",
		Defaults: map[string]any{
			"url":    "",
			"height": 400,
		},
		Render: renderEmbed,
	},
	{
		Type:  "gallery",
		Label: "Gallery",
		Defaults: map[string]any{
			"images":  []any{},
			"columns": 3,
			"gap":     8,
		},
		Render: renderGallery,
	},
	{
		Type:  "socialIcons",
		Label: "Social Icons",
		Defaults: map[string]any{
			"links": []any{},
			"size":  24,
		},
		Render: renderSocialIcons,
	},

	// Forms
	{
		Type:  "form",
		Label: "Form",
		Defaults: map[string]any{
			"action":     "",
			"method":     "post",
			"submitText": "Submit",
		},
		Render: renderForm,
	},
	{
		Type:  "input",
		Label: "Input",
		Defaults: map[string]any{
			"label":       "",
			"name":        "field",
			"inputType":   "text",
			"placeholder": "",
			"required":    false,
		},
		Render: renderInput,
	},
	{
		Type:  "textarea",
		Label: "Text Area",
		Defaults: map[string]any{
			"label":       "",
			"name":        "message",
			"placeholder": "",
			"rows":        4,
			"required":    false,
		},
		Render: renderTextarea,
	},
	{
		Type:  "select",
		Label: "Select",
		Defaults: map[string]any{
			"label":   "",
			"name":    "choice",
			"options": []any{},
		},
		Render: renderSelect,
	},
	{
		Type:  "checkbox",
		Label: "Checkbox",
		Defaults: map[string]any{
			"label":   "I agree",
			"name":    "agree",
			"checked": false,
		},
		Render: renderCheckbox,
	},
}
