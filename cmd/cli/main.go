package main

import (
	"fmt"
	"os"

	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/diorsolutions/eco-shop/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eco-shop",
		Short: "Back-office tooling for the eco-shop storefront",
	}
	rootCmd.AddCommand(addUserCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./ecoshop.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Ensure schema exists if running the cli before the server
	if err := db.Migrate("migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func addUserCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			if err := db.CreateUser(username, string(hashed)); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("User '%s' created successfully.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new user")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new user")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo categories and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			type seedProduct struct {
				name        string
				description string
				price       float64
				prep        int
			}
			seeds := map[string][]seedProduct{
				"Main dishes": {
					{"Plov", "Rice with lamb, carrots and raisins", 35000, 40},
					{"Lagman", "Hand-pulled noodles with beef and vegetables", 30000, 30},
				},
				"Drinks": {
					{"Green tea", "Pot of green tea", 5000, 5},
					{"Ayran", "Chilled yogurt drink", 8000, 5},
				},
			}

			for categoryName, products := range seeds {
				category := &models.Category{ID: uuid.New().String(), Name: categoryName}
				if err := db.CreateCategory(category); err != nil {
					return fmt.Errorf("failed to seed category %s: %w", categoryName, err)
				}
				for _, sp := range products {
					p := &models.Product{
						ID:              uuid.New().String(),
						Name:            sp.name,
						Description:     sp.description,
						Price:           sp.price,
						CategoryID:      category.ID,
						IsAvailable:     true,
						PreparationTime: sp.prep,
					}
					if err := db.CreateProduct(p); err != nil {
						return fmt.Errorf("failed to seed product %s: %w", sp.name, err)
					}
				}
			}

			fmt.Println("Seeded demo catalogue.")
			return nil
		},
	}
}
