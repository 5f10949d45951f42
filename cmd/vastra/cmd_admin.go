package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/database"
)

var (
	adminEmailFlag    string
	adminPasswordFlag string
	adminRoleFlag     string
	adminSiteFlag     string
)

// vastra admin:create — mint a back-office account from the shell.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create an admin or super_admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalCtx()
		defer stop()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx)

		if adminEmailFlag == "" || adminPasswordFlag == "" {
			return fmt.Errorf("--email and --password are required")
		}
		if adminRoleFlag != models.RoleAdmin && adminRoleFlag != models.RoleSuperAdmin {
			return fmt.Errorf("role must be %q or %q", models.RoleAdmin, models.RoleSuperAdmin)
		}

		admin := &models.AdminUser{
			Email:    adminEmailFlag,
			Role:     adminRoleFlag,
			IsActive: true,
		}
		if adminRoleFlag == models.RoleAdmin {
			if adminSiteFlag == "" {
				return fmt.Errorf("--site is required for role %q", models.RoleAdmin)
			}
			siteID, err := primitive.ObjectIDFromHex(adminSiteFlag)
			if err != nil {
				return fmt.Errorf("invalid --site id: %w", err)
			}
			site, err := repositories.NewSiteRepository(database.Collection("sites")).FindByID(ctx, siteID)
			if err != nil {
				return err
			}
			admin.Site = &site.ID
			// Shell-created site admins start with every flag on; trim
			// them later through the admin API.
			admin.Permissions = models.AdminPermissions{
				CanManageProducts:    true,
				CanManageCategories:  true,
				CanManageBrands:      true,
				CanManageOrders:      true,
				CanManageWebsite:     true,
				CanManageAdmins:      true,
				CanViewStats:         true,
				CanChangeCredentials: true,
			}
		}

		hash, err := auth.HashPassword(adminPasswordFlag)
		if err != nil {
			return err
		}
		admin.Password = hash

		admins := repositories.NewAdminUserRepository(database.Collection("admin_users"))
		if err := admins.Create(ctx, admin); err != nil {
			return err
		}
		fmt.Printf("Created %s account %s (id %s)\n", admin.Role, admin.Email, admin.ID.Hex())
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmailFlag, "email", "", "Account email (required)")
	adminCreateCmd.Flags().StringVar(&adminPasswordFlag, "password", "", "Account password (required)")
	adminCreateCmd.Flags().StringVar(&adminRoleFlag, "role", models.RoleAdmin, "Role: admin or super_admin")
	adminCreateCmd.Flags().StringVar(&adminSiteFlag, "site", "", "Site id the admin is pinned to (required for role admin)")
}
