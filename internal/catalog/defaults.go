package catalog

import "dealerpulse/internal/model"

func defaultCategoryWeights() map[string]CategoryWeight {
	return map[string]CategoryWeight{
		model.DepartmentNewVehicleSales:  {Category: "New Vehicle Sales", Weight: 0.25},
		model.DepartmentUsedVehicleSales: {Category: "Used Vehicle Sales", Weight: 0.20},
		model.DepartmentService:          {Category: "Service Performance", Weight: 0.20},
		model.DepartmentPartsInventory:   {Category: "Parts & Inventory", Weight: 0.15},
		model.DepartmentFinancialOps:     {Category: "Financial Operations", Weight: 0.20},
	}
}

func defaultModuleNames() map[string]string {
	return map[string]string{
		model.DepartmentNewVehicleSales:  "New Vehicle Sales",
		model.DepartmentUsedVehicleSales: "Used Vehicle Sales",
		model.DepartmentService:          "Service Performance",
		model.DepartmentPartsInventory:   "Parts & Inventory",
		model.DepartmentFinancialOps:     "Financial Operations",
	}
}

func defaultQuestionnaire() *model.Questionnaire {
	return &model.Questionnaire{
		Sections: []model.Section{
			{
				Key:   model.DepartmentNewVehicleSales,
				Title: "New Vehicle Sales",
				Questions: []model.Question{
					{ID: "nvs-1", Prompt: "Every inbound lead is logged and responded to within one hour.", Weight: 1.4, Category: model.DepartmentNewVehicleSales},
					{ID: "nvs-2", Prompt: "Sales staff follow a documented, consistent sales process.", Weight: 1.2, Category: model.DepartmentNewVehicleSales},
					{ID: "nvs-3", Prompt: "Discounting requires manager approval against a pricing policy.", Weight: 1.1, Category: model.DepartmentNewVehicleSales},
					{ID: "nvs-4", Prompt: "Showroom traffic and conversion rates are tracked weekly.", Weight: 0.9, Category: model.DepartmentNewVehicleSales},
				},
			},
			{
				Key:   model.DepartmentUsedVehicleSales,
				Title: "Used Vehicle Sales",
				Questions: []model.Question{
					{ID: "uvs-1", Prompt: "Used stock older than 60 days is flagged and actively managed.", Weight: 1.4, Category: model.DepartmentUsedVehicleSales},
					{ID: "uvs-2", Prompt: "Trade-in appraisals follow a standard valuation checklist.", Weight: 1.0, Category: model.DepartmentUsedVehicleSales},
					{ID: "uvs-3", Prompt: "Used vehicle pricing is benchmarked against the live market.", Weight: 1.2, Category: model.DepartmentUsedVehicleSales},
					{ID: "uvs-4", Prompt: "Reconditioning cost and time per unit are measured.", Weight: 0.9, Category: model.DepartmentUsedVehicleSales},
				},
			},
			{
				Key:   model.DepartmentService,
				Title: "Service Performance",
				Questions: []model.Question{
					{ID: "svc-1", Prompt: "Workshop capacity utilisation is planned at least a week ahead.", Weight: 1.3, Category: model.DepartmentService},
					{ID: "svc-2", Prompt: "Customers receive proactive status updates during repairs.", Weight: 1.1, Category: model.DepartmentService},
					{ID: "svc-3", Prompt: "Lapsed service customers are contacted with targeted offers.", Weight: 1.2, Category: model.DepartmentService},
					{ID: "svc-4", Prompt: "Technician productivity is measured against sold hours.", Weight: 1.0, Category: model.DepartmentService},
				},
			},
			{
				Key:   model.DepartmentPartsInventory,
				Title: "Parts & Inventory",
				Questions: []model.Question{
					{ID: "pts-1", Prompt: "Obsolete parts stock is reviewed and cleared quarterly.", Weight: 1.3, Category: model.DepartmentPartsInventory},
					{ID: "pts-2", Prompt: "Parts availability for booked jobs is confirmed in advance.", Weight: 1.1, Category: model.DepartmentPartsInventory},
					{ID: "pts-3", Prompt: "Stock turn is tracked per parts category.", Weight: 1.0, Category: model.DepartmentPartsInventory},
					{ID: "pts-4", Prompt: "Physical inventory counts reconcile with the system monthly.", Weight: 0.8, Category: model.DepartmentPartsInventory},
				},
			},
			{
				Key:   model.DepartmentFinancialOps,
				Title: "Financial Operations",
				Questions: []model.Question{
					{ID: "fin-1", Prompt: "A rolling 13-week cashflow forecast is maintained.", Weight: 1.4, Category: model.DepartmentFinancialOps},
					{ID: "fin-2", Prompt: "Departmental profitability is reported monthly per manager.", Weight: 1.2, Category: model.DepartmentFinancialOps},
					{ID: "fin-3", Prompt: "Debtor days are monitored with an escalation process.", Weight: 1.0, Category: model.DepartmentFinancialOps},
					{ID: "fin-4", Prompt: "Month-end close completes within five working days.", Weight: 0.9, Category: model.DepartmentFinancialOps},
				},
			},
		},
	}
}

func defaultSignalMappings() []model.SignalMapping {
	return []model.SignalMapping{
		{QuestionID: "nvs-1", Code: model.SignalLeadLeakage, ModuleKey: model.DepartmentNewVehicleSales},
		{QuestionID: "nvs-2", Code: model.SignalProcessAdherence, ModuleKey: model.DepartmentNewVehicleSales},
		{QuestionID: "nvs-3", Code: model.SignalPricingDiscipline, ModuleKey: model.DepartmentNewVehicleSales},
		{QuestionID: "nvs-4", Code: model.SignalLeadLeakage, ModuleKey: model.DepartmentNewVehicleSales},

		{QuestionID: "uvs-1", Code: model.SignalAgedInventory, ModuleKey: model.DepartmentUsedVehicleSales},
		{QuestionID: "uvs-2", Code: model.SignalProcessAdherence, ModuleKey: model.DepartmentUsedVehicleSales},
		{QuestionID: "uvs-3", Code: model.SignalPricingDiscipline, ModuleKey: model.DepartmentUsedVehicleSales},
		{QuestionID: "uvs-4", Code: model.SignalAgedInventory, ModuleKey: model.DepartmentUsedVehicleSales},

		{QuestionID: "svc-1", Code: model.SignalServiceCapacity, ModuleKey: model.DepartmentService},
		{QuestionID: "svc-2", Code: model.SignalCustomerRetention, ModuleKey: model.DepartmentService},
		{QuestionID: "svc-3", Code: model.SignalCustomerRetention, ModuleKey: model.DepartmentService},
		// svc-4 measures productivity reporting only; a weak answer here has
		// no actionable failure mode of its own.
		{QuestionID: "svc-4", Code: model.SignalNone, ModuleKey: model.DepartmentService},

		{QuestionID: "pts-1", Code: model.SignalPartsObsolescence, ModuleKey: model.DepartmentPartsInventory},
		{QuestionID: "pts-2", Code: model.SignalServiceCapacity, ModuleKey: model.DepartmentPartsInventory},
		{QuestionID: "pts-3", Code: model.SignalPartsObsolescence, ModuleKey: model.DepartmentPartsInventory},
		{QuestionID: "pts-4", Code: model.SignalNone, ModuleKey: model.DepartmentPartsInventory},

		{QuestionID: "fin-1", Code: model.SignalCashflowVisibility, ModuleKey: model.DepartmentFinancialOps},
		{QuestionID: "fin-2", Code: model.SignalCashflowVisibility, ModuleKey: model.DepartmentFinancialOps},
		{QuestionID: "fin-3", Code: model.SignalCashflowVisibility, ModuleKey: model.DepartmentFinancialOps},
		{QuestionID: "fin-4", Code: model.SignalNone, ModuleKey: model.DepartmentFinancialOps},
	}
}

func defaultMaxPerSignal() map[model.SignalCode]int {
	return map[model.SignalCode]int{
		model.SignalLeadLeakage:        2,
		model.SignalAgedInventory:      2,
		model.SignalCashflowVisibility: 2,
		model.SignalProcessAdherence:   1,
		model.SignalPricingDiscipline:  1,
	}
}

func defaultActionTemplates() []model.ActionTemplate {
	return []model.ActionTemplate{
		{
			TemplateID:           "tpl-lead-response-sla",
			Code:                 model.SignalLeadLeakage,
			Title:                "Introduce a one-hour lead response SLA",
			Description:          "Route every inbound lead through the CRM with an owner and a one-hour first-response target.",
			DefaultOwnerRole:     "Sales Manager",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Audit current lead sources and response times",
				"Configure CRM routing and escalation alerts",
				"Review SLA compliance in the weekly sales meeting",
			},
		},
		{
			TemplateID:           "tpl-lead-source-report",
			Code:                 model.SignalLeadLeakage,
			Title:                "Stand up a weekly lead-source conversion report",
			Description:          "Report leads, appointments and conversions per source so leakage points become visible.",
			DefaultOwnerRole:     "Sales Manager",
			DefaultTimeframeDays: 45,
			ImplementationSteps: []string{
				"Define the funnel stages to measure",
				"Build the report from CRM data",
				"Assign follow-up owners for underperforming sources",
			},
		},
		{
			TemplateID:           "tpl-aged-stock-policy",
			Code:                 model.SignalAgedInventory,
			Title:                "Adopt a 60/90-day aged stock policy",
			Description:          "Flag units at 60 days, reprice at 75, and wholesale at 90 to stop aged stock eroding margin.",
			DefaultOwnerRole:     "Used Vehicle Manager",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Produce an ageing report for current stock",
				"Set repricing rules per ageing band",
				"Review exceptions weekly with the dealer principal",
			},
		},
		{
			TemplateID:           "tpl-market-pricing-tool",
			Code:                 model.SignalAgedInventory,
			Title:                "Benchmark used pricing against live market data",
			Description:          "Price and reprice used stock against live market comparables instead of acquisition cost.",
			DefaultOwnerRole:     "Used Vehicle Manager",
			DefaultTimeframeDays: 60,
			ImplementationSteps: []string{
				"Select a market pricing data provider",
				"Define target price position per segment",
				"Reprice the full inventory and set a weekly cadence",
			},
		},
		{
			TemplateID:           "tpl-pricing-approval",
			Code:                 model.SignalPricingDiscipline,
			Title:                "Enforce a discount approval matrix",
			Description:          "Require manager sign-off above defined discount thresholds and log every approved deviation.",
			DefaultOwnerRole:     "General Manager",
			DefaultTimeframeDays: 21,
			ImplementationSteps: []string{
				"Define discount thresholds per model line",
				"Add the approval step to the deal workflow",
				"Review deviations monthly",
			},
		},
		{
			TemplateID:           "tpl-capacity-planning",
			Code:                 model.SignalServiceCapacity,
			Title:                "Plan workshop loading a week ahead",
			Description:          "Schedule bays and technicians against booked hours so capacity shortfalls surface before the day.",
			DefaultOwnerRole:     "Service Manager",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Baseline current utilisation per bay and technician",
				"Introduce a rolling 7-day loading plan",
				"Hold a daily 10-minute loading review",
			},
		},
		{
			TemplateID:           "tpl-parts-prepick",
			Code:                 model.SignalServiceCapacity,
			Title:                "Pre-pick parts for booked workshop jobs",
			Description:          "Confirm parts availability at booking and pre-pick the day before, cutting idle bay time.",
			DefaultOwnerRole:     "Parts Manager",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Link the booking system to parts availability checks",
				"Introduce a next-day pre-pick routine",
				"Track jobs delayed by missing parts",
			},
		},
		{
			TemplateID:           "tpl-retention-campaigns",
			Code:                 model.SignalCustomerRetention,
			Title:                "Launch lapsed-customer service campaigns",
			Description:          "Contact customers overdue for service with targeted offers and measure the recovery rate.",
			DefaultOwnerRole:     "Service Manager",
			DefaultTimeframeDays: 45,
			ImplementationSteps: []string{
				"Segment the customer base by last service date",
				"Define offers per segment",
				"Automate the contact cadence and track bookings",
			},
		},
		{
			TemplateID:           "tpl-status-updates",
			Code:                 model.SignalCustomerRetention,
			Title:                "Send proactive repair status updates",
			Description:          "Notify customers at check-in, diagnosis and completion so they are never left waiting unseen.",
			DefaultOwnerRole:     "Service Advisor Lead",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Define the notification trigger points",
				"Template the customer messages",
				"Measure CSI before and after rollout",
			},
		},
		{
			TemplateID:           "tpl-obsolescence-review",
			Code:                 model.SignalPartsObsolescence,
			Title:                "Run a quarterly obsolescence review",
			Description:          "Identify parts without movement in 12 months and clear them via returns, trading or scrappage.",
			DefaultOwnerRole:     "Parts Manager",
			DefaultTimeframeDays: 60,
			ImplementationSteps: []string{
				"Produce a no-movement report from the DMS",
				"Negotiate supplier return allowances",
				"Set a quarterly review calendar",
			},
		},
		{
			TemplateID:           "tpl-stock-turn-targets",
			Code:                 model.SignalPartsObsolescence,
			Title:                "Set stock turn targets per parts category",
			Description:          "Target and track stock turn per category so over-stocking is caught before it ages out.",
			DefaultOwnerRole:     "Parts Manager",
			DefaultTimeframeDays: 45,
			ImplementationSteps: []string{
				"Baseline current turn per category",
				"Agree target bands with the general manager",
				"Adjust ordering parameters to the targets",
			},
		},
		{
			TemplateID:           "tpl-cashflow-forecast",
			Code:                 model.SignalCashflowVisibility,
			Title:                "Maintain a rolling 13-week cashflow forecast",
			Description:          "Forecast weekly inflows and outflows thirteen weeks out and reconcile against actuals.",
			DefaultOwnerRole:     "Financial Controller",
			DefaultTimeframeDays: 30,
			ImplementationSteps: []string{
				"Build the forecast model from ledger categories",
				"Assign weekly update ownership",
				"Review variances in the monthly finance meeting",
			},
		},
		{
			TemplateID:           "tpl-department-pnl",
			Code:                 model.SignalCashflowVisibility,
			Title:                "Publish monthly departmental P&L statements",
			Description:          "Give every department manager a monthly profit statement with prior-month and budget comparatives.",
			DefaultOwnerRole:     "Financial Controller",
			DefaultTimeframeDays: 60,
			ImplementationSteps: []string{
				"Map cost centres to departments",
				"Automate the monthly statement pack",
				"Walk managers through their first statement",
			},
		},
		{
			TemplateID:           "tpl-process-playbook",
			Code:                 model.SignalProcessAdherence,
			Title:                "Document and train the core sales process",
			Description:          "Write the road-to-sale playbook, train all staff on it, and spot-check adherence monthly.",
			DefaultOwnerRole:     "General Manager",
			DefaultTimeframeDays: 60,
			ImplementationSteps: []string{
				"Document the current best-practice process",
				"Run training sessions per team",
				"Add adherence checks to monthly one-to-ones",
			},
		},
	}
}
