package model

type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleClerk       = "CLERK"
)

var DefaultRoles = []Role{
	{
		Code:        RoleMasterAdmin,
		Name:        "Master Administrator",
		Description: "Full system access including user administration",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Inventory, orders, payments and settings",
	},
	{
		Code:        RoleClerk,
		Name:        "Clerk",
		Description: "Sales entry, cash book and stock views",
	},
}

// PrivilegesFor picks the default privilege set of a role out of all privileges.
func PrivilegesFor(roleCode string, all []Privilege) []Privilege {
	var picked []Privilege
	for _, p := range all {
		switch roleCode {
		case RoleMasterAdmin:
			picked = append(picked, p)
		case RoleAdmin:
			if !IsUserAdministration(p.Code) {
				picked = append(picked, p)
			}
		case RoleClerk:
			for _, code := range ClerkPrivileges {
				if p.Code == code {
					picked = append(picked, p)
				}
			}
		}
	}
	return picked
}
