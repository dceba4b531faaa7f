package model

// Privilege is a permission code checked by middleware.RequirePrivilege.
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivUserView            = "user:view"
	PrivUserCreate          = "user:create"
	PrivUserUpdate          = "user:update"
	PrivUserDelete          = "user:delete"
	PrivUserUpdatePrivilege = "user:update_privilege"

	PrivItemView   = "item:view"
	PrivItemCreate = "item:create"
	PrivItemUpdate = "item:update"

	PrivPurchaseOrderView    = "purchase_order:view"
	PrivPurchaseOrderCreate  = "purchase_order:create"
	PrivPurchaseOrderFulfill = "purchase_order:fulfill"

	PrivSaleOrderView   = "sale_order:view"
	PrivSaleOrderCreate = "sale_order:create"
	PrivSaleOrderUpdate = "sale_order:update"

	PrivPaymentView   = "payment:view"
	PrivPaymentCreate = "payment:create"
	PrivPaymentSettle = "payment:settle"

	PrivStockView      = "stock:view"
	PrivSettingsUpdate = "settings:update"
	PrivDashboardView  = "dashboard:view"
)

var DefaultPrivileges = []Privilege{
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserCreate, Name: "Create User"},
	{Code: PrivUserUpdate, Name: "Update User"},
	{Code: PrivUserDelete, Name: "Delete User"},
	{Code: PrivUserUpdatePrivilege, Name: "Update User Privileges"},
	{Code: PrivItemView, Name: "View Master Item"},
	{Code: PrivItemCreate, Name: "Create Master Item"},
	{Code: PrivItemUpdate, Name: "Update Master Item"},
	{Code: PrivPurchaseOrderView, Name: "View Purchase Order"},
	{Code: PrivPurchaseOrderCreate, Name: "Create Purchase Order"},
	{Code: PrivPurchaseOrderFulfill, Name: "Receive Purchase Order"},
	{Code: PrivSaleOrderView, Name: "View Sale Order"},
	{Code: PrivSaleOrderCreate, Name: "Create Sale Order"},
	{Code: PrivSaleOrderUpdate, Name: "Update Sale Order"},
	{Code: PrivPaymentView, Name: "View Payment"},
	{Code: PrivPaymentCreate, Name: "Create Payment"},
	{Code: PrivPaymentSettle, Name: "Record Credit Installment"},
	{Code: PrivStockView, Name: "View Stock Ledger"},
	{Code: PrivSettingsUpdate, Name: "Update Company Settings"},
	{Code: PrivDashboardView, Name: "View Dashboard"},
}

// IsUserAdministration marks the codes reserved for MASTER_ADMIN.
func IsUserAdministration(code string) bool {
	switch code {
	case PrivUserCreate, PrivUserUpdate, PrivUserDelete, PrivUserUpdatePrivilege:
		return true
	}
	return false
}

// ClerkPrivileges is the day-to-day set for shop-floor and cashier staff.
var ClerkPrivileges = []string{
	PrivItemView,
	PrivPurchaseOrderView,
	PrivSaleOrderView,
	PrivSaleOrderCreate,
	PrivPaymentView,
	PrivPaymentCreate,
	PrivPaymentSettle,
	PrivStockView,
	PrivDashboardView,
}
