package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// compile-time check that *DB implements repository.ModuleRepository
var _ repository.ModuleRepository = (*DB)(nil)

// ListModules returns all modules without their section bodies. The list view only
// needs name and description; GetByID loads the full content.
func (db *DB) ListModules(ctx context.Context) ([]model.Module, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description FROM modules ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing modules: %w", err)
	}
	defer rows.Close()

	modules := make([]model.Module, 0, 4)
	for rows.Next() {
		var m model.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning module row: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating modules: %w", err)
	}

	return modules, nil
}

// GetModuleByID returns one module with its full section tree.
func (db *DB) GetModuleByID(ctx context.Context, id string) (*model.Module, error) {
	var m model.Module
	var sections string

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, sections FROM modules WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Description, &sections)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("module", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting module %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(sections), &m.Sections); err != nil {
		return nil, fmt.Errorf("sqlite: decoding sections for module %s: %w", id, err)
	}

	return &m, nil
}

// seedModules loads the built-in educational content. INSERT OR IGNORE keeps
// restarts from duplicating or overwriting rows.
func (db *DB) seedModules() error {
	for _, m := range seedModuleData {
		sections, err := json.Marshal(m.Sections)
		if err != nil {
			return fmt.Errorf("encoding sections for module %s: %w", m.ID, err)
		}
		_, err = db.conn.Exec(
			`INSERT OR IGNORE INTO modules (id, name, description, sections)
			 VALUES (?, ?, ?, ?)`,
			m.ID, m.Name, m.Description, string(sections),
		)
		if err != nil {
			return fmt.Errorf("seeding module %s: %w", m.ID, err)
		}
	}
	return nil
}

var seedModuleData = []model.Module{
	{
		ID:          "module-1",
		Name:        "Module 1: Understanding Financial Basics",
		Description: "This module will equip you with the essential tools to manage your money effectively, save for the future, and make your first investments.",
		Sections: []model.ModuleSection{
			{
				Title:   "Welcome to Understanding Financial Basics",
				Content: "Welcome to the first step on your journey to financial empowerment! This module will equip you with the essential tools to manage your money effectively, save for the future, and make your first investments. Here's to transforming your financial dough into a prosperous loaf of bread!",
				Subsections: []model.ModuleSubsection{
					{
						Title:   "Welcome Screen",
						Content: "Embark on your financial journey with the mastery of money management. Let's turn your financial dough into rising bread!",
					},
				},
			},
			{
				Title:   "Budgeting: Crafting a Plan for Your Income and Expenses",
				Content: "Discover the power of a budget — a strategic plan that enables you to control your financial destiny. Learn the difference between income and expenses and how a well-crafted budget can be your roadmap to financial success.",
				Subsections: []model.ModuleSubsection{
					{
						Title:   "Introduction to Budgeting",
						Content: "Learn the difference between income and expenses and how a well-crafted budget can be your roadmap to financial success.",
					},
					{
						Title: "Categories of Budgeting",
						Content: "Explore the three main categories of expenses:\n" +
							"- Fixed Expenses: Regular payments like rent or mortgage, insurance, and car payments.\n" +
							"- Variable Expenses: Costs that vary, such as utility bills, groceries, and fuel.\n" +
							"- Discretionary Expenses: Non-essential spending, including dining out, entertainment, and shopping.",
					},
					{
						Title: "Crafting Your Budget",
						Content: "Follow a step-by-step guide to create a personalized budget:\n" +
							"1. Identify Your Income: Sum up all sources of monthly income.\n" +
							"2. List Your Expenses: Catalog all your monthly expenses, fixed and variable.\n" +
							"3. Set Priorities: Determine necessities versus luxuries.\n" +
							"4. Allocate Funds: Assign your income to cover all expenses, ensuring necessities are prioritized.\n" +
							"5. Plan for Savings: Set aside a portion of income for emergency funds, short-term and long-term savings.",
					},
					{
						Title: "Budgeting Best Practices",
						Content: "Gain tips on maintaining your budget, such as:\n" +
							"- Tracking your spending to stay within budget limits.\n" +
							"- Reviewing and adjusting your budget monthly.\n" +
							"- Using budgeting apps to simplify the process.",
					},
				},
			},
			{
				Title:   "Saving: The Art of Setting Money Aside for Future Needs",
				Content: "Understand why saving is crucial for financial security. Learn about emergency funds, why they're essential, and how they provide a cushion for unexpected expenses.",
				Subsections: []model.ModuleSubsection{
					{
						Title:   "The Importance of Saving",
						Content: "Learn about emergency funds, why they're essential, and how they provide a cushion for unexpected expenses.",
					},
					{
						Title: "Types of Savings",
						Content: "Differentiate between:\n" +
							"- Emergency Funds: Immediate reserves for unforeseen events.\n" +
							"- Short-Term Savings: For goals within a few years, like vacations or electronics.\n" +
							"- Long-Term Savings: For future aspirations, such as education or retirement.",
					},
					{
						Title:   "Setting Saving Goals",
						Content: "Guidance on establishing realistic and achievable saving goals based on your budget, with milestones to celebrate along the way.",
					},
					{
						Title: "Saving Techniques",
						Content: "Techniques that promote consistent saving habits, including:\n" +
							"- Automatic transfers to savings accounts.\n" +
							"- The 'pay yourself first' method.\n" +
							"- Cutting unnecessary expenses to boost savings.",
					},
				},
			},
		},
	},
}
