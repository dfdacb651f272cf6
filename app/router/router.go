package router

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lmt-crm/app/controller"
	"lmt-crm/auth"
	"lmt-crm/models"
)

type Controllers struct {
	Auth      *controller.AuthController
	Proposal  *controller.ProposalController
	Content   *controller.ContentController
	Lead      *controller.LeadController
	Blueprint *controller.BlueprintController
	Vehicle   *controller.VehicleController
	Gallery   *controller.GalleryController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, authService *auth.Service) {
	// Health and metrics
	http.HandleFunc("/ping", pingHandler)
	http.Handle("/metrics", promhttp.Handler())

	// Session
	http.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Auth.Login(w, r)
	})
	http.HandleFunc("/me", authService.RequireAuth(controllers.Auth.Me))

	// Proposal builder
	http.HandleFunc("/proposals", authService.RequireCapability(models.CapBuildProposals,
		func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Proposal.Create(w, r)
		}))

	http.HandleFunc("/proposals/templates", controllers.Proposal.ListTemplates)

	http.HandleFunc("/proposals/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/proposals/")

		// The render endpoint stays token-free: the headless browser of
		// the PDF stage fetches it with a bare GET.
		if strings.HasSuffix(path, "/render") && r.Method == http.MethodGet {
			controllers.Proposal.Render(w, r)
			return
		}

		requireBuilder := func(h http.HandlerFunc) {
			authService.RequireCapability(models.CapBuildProposals, h)(w, r)
		}

		switch {
		case strings.HasSuffix(path, "/export/pdf") && r.Method == http.MethodGet:
			requireBuilder(controllers.Proposal.ExportPDF)
		case strings.HasSuffix(path, "/export/whatsapp") && r.Method == http.MethodGet:
			requireBuilder(controllers.Proposal.ExportWhatsApp)
		case strings.HasSuffix(path, "/days") && r.Method == http.MethodPost:
			requireBuilder(controllers.Proposal.AppendDay)
		case strings.HasSuffix(path, "/tags") && r.Method == http.MethodPost:
			requireBuilder(controllers.Proposal.ToggleTag)
		case strings.HasSuffix(path, "/image") && r.Method == http.MethodPost:
			requireBuilder(controllers.Proposal.UploadDayImage)
		case strings.HasSuffix(path, "/lead") && r.Method == http.MethodPost:
			requireBuilder(controllers.Proposal.AttachLead)
		case strings.HasSuffix(path, "/discount") && r.Method == http.MethodPost:
			requireBuilder(controllers.Proposal.SetDiscount)
		case strings.Contains(path, "/days/") && r.Method == http.MethodDelete:
			requireBuilder(controllers.Proposal.RemoveDay)
		case strings.Contains(path, "/days/") && r.Method == http.MethodPatch:
			requireBuilder(controllers.Proposal.UpdateDay)
		case !strings.Contains(path, "/") && r.Method == http.MethodGet:
			requireBuilder(controllers.Proposal.Get)
		case !strings.Contains(path, "/") && r.Method == http.MethodDelete:
			requireBuilder(controllers.Proposal.Delete)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Lead pipeline
	http.HandleFunc("/admin/leads", authService.RequireCapability(models.CapManageLeads,
		func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				controllers.Lead.List(w, r)
			case http.MethodPost:
				controllers.Lead.Create(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		}))
	http.HandleFunc("/admin/leads/", authService.RequireCapability(models.CapManageLeads,
		func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPatch:
				controllers.Lead.UpdateStatus(w, r)
			case r.Method == http.MethodDelete:
				controllers.Lead.Delete(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		}))

	// Blueprint library
	http.HandleFunc("/admin/blueprints", authService.RequireCapability(models.CapBuildProposals,
		func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				controllers.Blueprint.List(w, r)
			case http.MethodPost:
				controllers.Blueprint.Create(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		}))
	http.HandleFunc("/admin/blueprints/", authService.RequireCapability(models.CapBuildProposals,
		func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Blueprint.Delete(w, r)
		}))

	// Fleet registry
	http.HandleFunc("/admin/fleet", authService.RequireCapability(models.CapManageFleet,
		func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				controllers.Vehicle.List(w, r)
			case http.MethodPost:
				controllers.Vehicle.Create(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		}))
	http.HandleFunc("/admin/fleet/", authService.RequireCapability(models.CapManageFleet,
		func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPatch:
				controllers.Vehicle.UpdateStatus(w, r)
			case http.MethodDelete:
				controllers.Vehicle.Delete(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
		}))

	// Content overrides (super admin edit mode)
	http.HandleFunc("/admin/content", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authService.RequireAuth(controllers.Content.List)(w, r)
		case http.MethodPut:
			authService.RequireCapability(models.CapEditContent, controllers.Content.Set)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Gallery (nil when Drive is not configured)
	if controllers.Gallery != nil {
		http.HandleFunc("/admin/gallery", authService.RequireCapability(models.CapBuildProposals,
			func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
					return
				}
				controllers.Gallery.List(w, r)
			}))
		http.HandleFunc("/admin/gallery/sync", authService.RequireCapability(models.CapManageSettings,
			func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
					return
				}
				controllers.Gallery.Sync(w, r)
			}))
		http.HandleFunc("/admin/gallery/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Gallery.GetImage(w, r)
		})
	}
}
