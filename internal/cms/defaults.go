package cms

import "sveasoft.se/web/internal/location"

const unsplash = "?ixlib=rb-4.0.3&auto=format&fit=crop&w=2070&q=80"

// DefaultSite is the built-in document served when no content file is configured.
func DefaultSite() Site {
	return Site{
		Brand: Brand{
			Name:    "Sveasoft",
			Tagline: "Building exceptional web applications that deliver value and elevate your business.",
			Socials: []Link{
				{Label: "GitHub", Href: "https://github.com/sveasoft"},
				{Label: "LinkedIn", Href: "https://www.linkedin.com/company/sveasoft"},
				{Label: "Twitter", Href: "https://twitter.com/sveasoft"},
			},
		},
		Hero: Hero{
			Badge:     "Premium Web Application Development",
			Title:     "Crafting",
			Highlight: "exceptional",
			TitleTail: "digital experiences",
			Lead:      "We build modern, responsive web applications with meticulous attention to detail and a focus on performance and user experience.",
			Primary:   Link{Label: "Start a Project", Href: "#contact"},
			Secondary: Link{Label: "Explore Services", Href: "#services"},
		},
		Services: []Service{
			{ID: "web-apps", Icon: "code", Title: "Web Application Development", Description: "Custom web applications built with modern frameworks that scale with your business needs."},
			{ID: "mobile", Icon: "smartphone", Title: "Mobile Application Integration", Description: "Seamless integration between your web applications and mobile platforms for a **unified** experience."},
			{ID: "api", Icon: "server", Title: "API Development", Description: "Robust and secure APIs that connect your applications with third-party services and data sources."},
			{ID: "bi", Icon: "chart", Title: "Business Intelligence", Description: "Data visualization and analytics solutions that help you make informed business decisions."},
			{ID: "cloud", Icon: "cloud", Title: "Cloud Infrastructure", Description: "Scalable cloud solutions designed for performance, security, and cost optimization."},
			{ID: "websites", Icon: "globe", Title: "Website Development", Description: "Responsive websites with modern design and optimal performance that represent your brand."},
		},
		Projects: []Project{
			{
				ID:           "enterprise-crm",
				Title:        "Enterprise CRM Solution",
				Description:  "A comprehensive customer relationship management system with advanced analytics and reporting capabilities.",
				Image:        "https://images.unsplash.com/photo-1551434678-e076c223a692" + unsplash,
				Category:     "Web Application",
				Technologies: []string{"React", "Node.js", "GraphQL", "AWS"},
			},
			{
				ID:           "ecommerce-platform",
				Title:        "E-commerce Platform",
				Description:  "A scalable e-commerce solution with integrated payment systems and inventory management.",
				Image:        "https://images.unsplash.com/photo-1556155092-490a1ba16284" + unsplash,
				Category:     "Web Application",
				Technologies: []string{"Next.js", "Stripe", "PostgreSQL", "Docker"},
			},
			{
				ID:           "analytics-dashboard",
				Title:        "Real-time Analytics Dashboard",
				Description:  "A data visualization platform providing real-time insights for business intelligence.",
				Image:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71" + unsplash,
				Category:     "Data Visualization",
				Technologies: []string{"Vue.js", "D3.js", "Firebase", "ElasticSearch"},
			},
			{
				ID:           "logistics",
				Title:        "Logistics Management System",
				Description:  "An end-to-end solution for tracking and managing logistics operations with real-time updates.",
				Image:        "https://images.unsplash.com/photo-1494412651409-8963ce7935a7" + unsplash,
				Category:     "Enterprise Solution",
				Technologies: []string{"React", "Node.js", "MongoDB", "Google Maps API"},
			},
		},
		Packages: []Package{
			{
				ID: "starter", Name: "Starter Package", Hours: 5, Price: 49900, Currency: "USD",
				Description: "Perfect for small projects and quick consultations",
				Features: []string{
					"Expert technical consultation",
					"Code review and optimization",
					"Architecture recommendations",
					"Documentation assistance",
				},
			},
			{
				ID: "professional", Name: "Professional Package", Hours: 10, Price: 89900, Currency: "USD",
				Description: "Ideal for medium-sized projects and ongoing support",
				Features: []string{
					"Everything in Starter",
					"System design consultation",
					"Implementation assistance",
					"Team workshops and training",
					"Priority scheduling",
				},
				Popular: true,
			},
			{
				ID: "enterprise", Name: "Enterprise Package", Hours: 20, Price: 169900, Currency: "USD",
				Description: "Comprehensive solution for large-scale projects",
				Features: []string{
					"Everything in Professional",
					"Dedicated senior consultant",
					"Custom solution development",
					"Ongoing technical support",
					"Long-term strategy planning",
					"Performance optimization",
				},
			},
		},
		Office: location.Office{
			Name:       "Sveasoft Stockholm",
			Street:     "Sveavägen 123",
			PostalCode: "111 34",
			City:       "Stockholm",
			Country:    "Sweden",
			Phone:      "+46 8 123 45 67",
			Email:      "contact@sveasoft.se",
			Hours:      "Mon–Fri 09:00–17:00",
			Lng:        18.0686,
			Lat:        59.3293,
		},
		Footer: Footer{
			Blurb: "Building exceptional web applications that deliver value and elevate your business.",
			Columns: []FooterColumn{
				{Title: "Services", Links: []Link{
					{Label: "Web Application Development", Href: "#services"},
					{Label: "Mobile Application Integration", Href: "#services"},
					{Label: "API Development", Href: "#services"},
					{Label: "Business Intelligence", Href: "#services"},
				}},
				{Title: "Company", Links: []Link{
					{Label: "About Us", Href: "#about"},
					{Label: "Projects", Href: "#projects"},
					{Label: "Contact", Href: "#contact"},
				}},
				{Title: "Legal", Links: []Link{
					{Label: "Privacy Policy", Href: "/legal/privacy"},
					{Label: "Terms of Service", Href: "/legal/terms"},
				}},
			},
			Legal: []Link{
				{Label: "Privacy", Href: "/legal/privacy"},
				{Label: "Terms", Href: "/legal/terms"},
			},
		},
	}
}
