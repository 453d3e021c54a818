package rbac

// Permission is an opaque capability token gating one specific action.
// Permissions carry equality semantics only: no ordering, no hierarchy.
type Permission string

// Role is a fixed category of user determining their permission set.
// The set of roles is closed; values outside it resolve to zero permissions.
type Role string

// Known roles.
const (
	RoleEmployeeAdmin     Role = "employee_admin"
	RoleEmployeeTraffic   Role = "employee_traffic"
	RoleAdvertiserAdmin   Role = "advertiser_admin"
	RoleAdvertiserTraffic Role = "advertiser_traffic"
)

// The permission catalog. Routes and services reference these constants;
// nothing outside this package should mint new tokens.
const (
	PermViewDashboard Permission = "view_dashboard"

	PermViewAdvertisers        Permission = "view_advertisers"
	PermCreateAdvertiser       Permission = "create_advertiser"
	PermEditAdvertiser         Permission = "edit_advertiser"
	PermDeleteAdvertiser       Permission = "delete_advertiser"
	PermManageAdvertiserBudget Permission = "manage_advertiser_budget"

	PermViewCampaigns  Permission = "view_campaigns"
	PermCreateCampaign Permission = "create_campaign"
	PermEditCampaign   Permission = "edit_campaign"
	PermDeleteCampaign Permission = "delete_campaign"

	PermViewAdGroups  Permission = "view_adgroups"
	PermCreateAdGroup Permission = "create_adgroup"
	PermEditAdGroup   Permission = "edit_adgroup"
	PermDeleteAdGroup Permission = "delete_adgroup"

	PermViewCreatives   Permission = "view_creatives"
	PermCreateCreative  Permission = "create_creative"
	PermEditCreative    Permission = "edit_creative"
	PermDeleteCreative  Permission = "delete_creative"
	PermApproveCreative Permission = "approve_creative"

	PermViewAudiences  Permission = "view_audiences"
	PermCreateAudience Permission = "create_audience"
	PermEditAudience   Permission = "edit_audience"
	PermDeleteAudience Permission = "delete_audience"

	PermViewReports   Permission = "view_reports"
	PermExportReports Permission = "export_reports"

	PermManageUsers  Permission = "manage_users"
	PermViewAuditLog Permission = "view_audit_log"
)

// Catalog lists every known permission token.
var Catalog = []Permission{
	PermViewDashboard,
	PermViewAdvertisers,
	PermCreateAdvertiser,
	PermEditAdvertiser,
	PermDeleteAdvertiser,
	PermManageAdvertiserBudget,
	PermViewCampaigns,
	PermCreateCampaign,
	PermEditCampaign,
	PermDeleteCampaign,
	PermViewAdGroups,
	PermCreateAdGroup,
	PermEditAdGroup,
	PermDeleteAdGroup,
	PermViewCreatives,
	PermCreateCreative,
	PermEditCreative,
	PermDeleteCreative,
	PermApproveCreative,
	PermViewAudiences,
	PermCreateAudience,
	PermEditAudience,
	PermDeleteAudience,
	PermViewReports,
	PermExportReports,
	PermManageUsers,
	PermViewAuditLog,
}

// rolePermissions maps each role to its granted permissions.
//
// The tables are flat: each role's list is enumerated independently even
// where sets overlap. The admin roles are deliberately not supersets of
// one another (advertiser_admin never receives delete_advertiser or
// manage_advertiser_budget), so collapsing the tables into an inheritance
// chain would silently change grants. The employee_traffic and
// advertiser_traffic lists are near-duplicates; they stay as two literal
// enumerations so either can diverge later without touching the other.
var rolePermissions = map[Role][]Permission{
	RoleEmployeeAdmin: {
		PermViewDashboard,
		PermViewAdvertisers,
		PermCreateAdvertiser,
		PermEditAdvertiser,
		PermDeleteAdvertiser,
		PermManageAdvertiserBudget,
		PermViewCampaigns,
		PermCreateCampaign,
		PermEditCampaign,
		PermDeleteCampaign,
		PermViewAdGroups,
		PermCreateAdGroup,
		PermEditAdGroup,
		PermDeleteAdGroup,
		PermViewCreatives,
		PermCreateCreative,
		PermEditCreative,
		PermDeleteCreative,
		PermApproveCreative,
		PermViewAudiences,
		PermCreateAudience,
		PermEditAudience,
		PermDeleteAudience,
		PermViewReports,
		PermExportReports,
		PermManageUsers,
		PermViewAuditLog,
	},
	RoleEmployeeTraffic: {
		PermViewDashboard,
		PermViewAdvertisers,
		PermViewCampaigns,
		PermCreateCampaign,
		PermEditCampaign,
		PermViewAdGroups,
		PermCreateAdGroup,
		PermEditAdGroup,
		PermViewCreatives,
		PermCreateCreative,
		PermEditCreative,
		PermViewAudiences,
		PermCreateAudience,
		PermEditAudience,
		PermViewReports,
		PermExportReports,
	},
	RoleAdvertiserAdmin: {
		PermViewDashboard,
		PermViewAdvertisers,
		PermEditAdvertiser,
		PermViewCampaigns,
		PermCreateCampaign,
		PermEditCampaign,
		PermDeleteCampaign,
		PermViewAdGroups,
		PermCreateAdGroup,
		PermEditAdGroup,
		PermDeleteAdGroup,
		PermViewCreatives,
		PermCreateCreative,
		PermEditCreative,
		PermDeleteCreative,
		PermApproveCreative,
		PermViewAudiences,
		PermCreateAudience,
		PermEditAudience,
		PermDeleteAudience,
		PermViewReports,
		PermExportReports,
	},
	RoleAdvertiserTraffic: {
		PermViewDashboard,
		PermViewCampaigns,
		PermCreateCampaign,
		PermEditCampaign,
		PermViewAdGroups,
		PermCreateAdGroup,
		PermEditAdGroup,
		PermViewCreatives,
		PermCreateCreative,
		PermEditCreative,
		PermViewAudiences,
		PermCreateAudience,
		PermEditAudience,
		PermViewReports,
		PermExportReports,
	},
}

// roleDisplayNames holds the human-readable label for each role.
var roleDisplayNames = map[Role]string{
	RoleEmployeeAdmin:     "Platform Administrator",
	RoleEmployeeTraffic:   "Platform Trafficker",
	RoleAdvertiserAdmin:   "Advertiser Administrator",
	RoleAdvertiserTraffic: "Advertiser Trafficker",
}

// roleDescriptions holds the one-line description shown in the admin UI.
var roleDescriptions = map[Role]string{
	RoleEmployeeAdmin:     "Full access to every advertiser, campaign, budget and user on the platform.",
	RoleEmployeeTraffic:   "Builds and maintains campaigns, ad groups and creatives across advertisers.",
	RoleAdvertiserAdmin:   "Manages a single advertiser account, its campaigns and its audiences.",
	RoleAdvertiserTraffic: "Builds and maintains campaigns for a single advertiser account.",
}
