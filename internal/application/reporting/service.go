package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/shared"
)

// Service provides dashboard, template and analytics application logic
type Service struct {
	dashboardRepo reporting.DashboardRepository
	templateRepo  reporting.TemplateRepository
	analyticsRepo reporting.AnalyticsRepository
}

// NewService creates a new reporting service
func NewService(dashboardRepo reporting.DashboardRepository, templateRepo reporting.TemplateRepository, analyticsRepo reporting.AnalyticsRepository) *Service {
	return &Service{
		dashboardRepo: dashboardRepo,
		templateRepo:  templateRepo,
		analyticsRepo: analyticsRepo,
	}
}

// CreateDashboard creates a dashboard with a validated widget layout
func (s *Service) CreateDashboard(ctx context.Context, req CreateDashboardRequest) (*DashboardResponse, error) {
	dashboard, err := reporting.NewDashboard(req.Name, req.Description, req.OwnerID, req.Layout)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.clearDefault(ctx, req.OwnerID); err != nil {
			return nil, err
		}
		dashboard.MarkDefault()
	}

	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// CloneDashboardFromTemplate creates a dashboard seeded with a report
// template's layout. Name and description default to the template's own
// when the request leaves them empty.
func (s *Service) CloneDashboardFromTemplate(ctx context.Context, templateID uuid.UUID, req CloneDashboardRequest) (*DashboardResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.Active {
		return nil, shared.NewDomainError("TEMPLATE_INACTIVE", "Cannot clone a retired template")
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}
	description := req.Description
	if description == "" {
		description = template.Description
	}

	dashboard, err := reporting.NewDashboard(name, description, req.OwnerID, template.Layout)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.clearDefault(ctx, req.OwnerID); err != nil {
			return nil, err
		}
		dashboard.MarkDefault()
	}

	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// GetDashboard returns a dashboard by ID
func (s *Service) GetDashboard(ctx context.Context, dashboardID uuid.UUID) (*DashboardResponse, error) {
	dashboard, err := s.dashboardRepo.FindByID(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// GetDefaultDashboard returns the owner's landing dashboard, if any
func (s *Service) GetDefaultDashboard(ctx context.Context, ownerID uuid.UUID) (*DashboardResponse, error) {
	dashboard, err := s.dashboardRepo.FindDefault(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// ListDashboards returns the dashboards owned by an employee
func (s *Service) ListDashboards(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]DashboardResponse, error) {
	dashboards, err := s.dashboardRepo.FindByOwner(ctx, ownerID, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToDashboardResponses(dashboards), nil
}

// UpdateDashboard renames a dashboard
func (s *Service) UpdateDashboard(ctx context.Context, dashboardID uuid.UUID, req UpdateDashboardRequest) (*DashboardResponse, error) {
	dashboard, err := s.dashboardRepo.FindByID(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if err := dashboard.Rename(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// ReplaceDashboardLayout swaps in a new layout after validating it
func (s *Service) ReplaceDashboardLayout(ctx context.Context, dashboardID uuid.UUID, req ReplaceLayoutRequest) (*DashboardResponse, error) {
	dashboard, err := s.dashboardRepo.FindByID(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if err := dashboard.ReplaceLayout(req.Layout); err != nil {
		return nil, err
	}
	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// SetDefaultDashboard makes a dashboard the owner's landing view,
// clearing the flag on any previous default.
func (s *Service) SetDefaultDashboard(ctx context.Context, dashboardID uuid.UUID) (*DashboardResponse, error) {
	dashboard, err := s.dashboardRepo.FindByID(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if err := s.clearDefault(ctx, dashboard.OwnerID); err != nil {
		return nil, err
	}
	dashboard.MarkDefault()
	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		return nil, err
	}
	return ToDashboardResponse(dashboard), nil
}

// DeleteDashboard removes a dashboard
func (s *Service) DeleteDashboard(ctx context.Context, dashboardID uuid.UUID) error {
	if _, err := s.dashboardRepo.FindByID(ctx, dashboardID); err != nil {
		return err
	}
	return s.dashboardRepo.Delete(ctx, dashboardID)
}

func (s *Service) clearDefault(ctx context.Context, ownerID uuid.UUID) error {
	current, err := s.dashboardRepo.FindDefault(ctx, ownerID)
	if err != nil || current == nil {
		return nil
	}
	current.ClearDefault()
	return s.dashboardRepo.Save(ctx, current)
}

// CreateTemplate creates a report template
func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	if existing, err := s.templateRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	template, err := reporting.NewTemplate(req.Name, req.Description, req.CreatedBy, req.Layout, req.PaperSize, req.Orientation)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// GetTemplate returns a template by ID
func (s *Service) GetTemplate(ctx context.Context, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// ListTemplates returns templates matching the filter along with the total count
func (s *Service) ListTemplates(ctx context.Context, filter ListFilter) ([]TemplateResponse, int64, error) {
	domainFilter := buildFilter(filter)

	templates, err := s.templateRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTemplateResponses(templates), total, nil
}

// UpdateTemplate changes a template's name, description and layout
func (s *Service) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := template.Update(req.Name, req.Description, req.Layout); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// SetTemplatePageSetup changes a template's paper size and orientation
func (s *Service) SetTemplatePageSetup(ctx context.Context, templateID uuid.UUID, req PageSetupRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := template.SetPageSetup(req.PaperSize, req.Orientation); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// DeactivateTemplate retires a template
func (s *Service) DeactivateTemplate(ctx context.Context, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := template.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// ActivateTemplate restores a retired template
func (s *Service) ActivateTemplate(ctx context.Context, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := template.Activate(); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return ToTemplateResponse(template), nil
}

// OrderSummary returns the current order book snapshot
func (s *Service) OrderSummary(ctx context.Context) (*reporting.OrderSummary, error) {
	return s.analyticsRepo.GetOrderSummary(ctx)
}

// RevenueTrend returns daily invoiced vs collected revenue for the period
func (s *Service) RevenueTrend(ctx context.Context, query AnalyticsQuery) ([]reporting.RevenueTrendPoint, error) {
	return s.analyticsRepo.GetRevenueTrend(ctx, toAnalyticsFilter(query))
}

// OutstandingInvoices returns unpaid invoices, most overdue first
func (s *Service) OutstandingInvoices(ctx context.Context, query AnalyticsQuery) ([]reporting.OutstandingInvoiceRow, error) {
	return s.analyticsRepo.GetOutstandingInvoices(ctx, toAnalyticsFilter(query))
}

// FabricConsumption returns meters issued per fabric over the period
func (s *Service) FabricConsumption(ctx context.Context, query AnalyticsQuery) ([]reporting.FabricConsumptionRow, error) {
	return s.analyticsRepo.GetFabricConsumption(ctx, toAnalyticsFilter(query))
}

// EmployeeProductivity returns per-employee output over the period
func (s *Service) EmployeeProductivity(ctx context.Context, query AnalyticsQuery) ([]reporting.EmployeeProductivityRow, error) {
	return s.analyticsRepo.GetEmployeeProductivity(ctx, toAnalyticsFilter(query))
}

// ComplianceOpenItems returns open report counts per category
func (s *Service) ComplianceOpenItems(ctx context.Context) ([]reporting.ComplianceOpenItemsRow, error) {
	return s.analyticsRepo.GetComplianceOpenItems(ctx)
}

// toAnalyticsFilter defaults the period to the trailing 30 days
func toAnalyticsFilter(query AnalyticsQuery) reporting.AnalyticsFilter {
	filter := reporting.AnalyticsFilter{
		EmployeeID: query.EmployeeID,
		FabricID:   query.FabricID,
		TopN:       query.TopN,
	}
	now := time.Now()
	if query.EndDate != nil {
		filter.EndDate = *query.EndDate
	} else {
		filter.EndDate = now
	}
	if query.StartDate != nil {
		filter.StartDate = *query.StartDate
	} else {
		filter.StartDate = filter.EndDate.AddDate(0, 0, -30)
	}
	return filter
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	return domainFilter
}
