package ui

// Descriptors returns the entity screens of the admin interface. Every
// list screen in the application is generated from this catalog; adding
// a screen means adding an entry here plus its server actions.
func Descriptors() []EntityDescriptor {
	return []EntityDescriptor{
		productDescriptor(),
		supplierDescriptor(),
		customerDescriptor(),
		employeeDescriptor(),
		expenseDescriptor(),
		purchaseDescriptor(),
		saleDescriptor(),
	}
}

func populateFields(form *Form, rec Record, idField string, fields ...string) {
	_ = form.Set(idField, rec.String("id"))
	for _, name := range fields {
		_ = form.Set(name, rec.String(name))
	}
}

func productDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "products",
		Singular:     "Product",
		ListAction:   "rsam_get_products",
		SaveAction:   "rsam_save_product",
		DeleteAction: "rsam_delete_product",
		ListKey:      "products",
		IDField:      "product_id",
		LabelKey:     "name",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "category", Label: "Category"},
			{Key: "unit_type", Label: "Unit"},
			{Key: "stock_quantity", Label: "Stock"},
			{Key: "stock_value_formatted", Label: "Stock Value"},
			{Key: "selling_price_formatted", Label: "Price"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "product_id", Kind: FieldHidden},
				Field{Name: "name", Label: "Name", Kind: FieldText, Required: true},
				Field{Name: "category", Label: "Category", Kind: FieldText},
				Field{Name: "unit_type", Label: "Unit Type", Kind: FieldSelect, Options: []Option{
					{Value: "pcs", Label: "Pieces"},
					{Value: "kg", Label: "Kilograms"},
					{Value: "ltr", Label: "Liters"},
					{Value: "box", Label: "Box"},
					{Value: "pack", Label: "Pack"},
				}},
				Field{Name: "selling_price", Label: "Selling Price", Kind: FieldNumber, Required: true},
				Field{Name: "low_stock_threshold", Label: "Low Stock Threshold", Kind: FieldNumber, Required: true},
				Field{Name: "has_expiry", Label: "Has Expiry", Kind: FieldCheckbox},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "product_id",
				"name", "category", "unit_type", "selling_price", "low_stock_threshold", "has_expiry")
		},
	}
}

func supplierDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "suppliers",
		Singular:     "Supplier",
		ListAction:   "rsam_get_suppliers",
		SaveAction:   "rsam_save_supplier",
		DeleteAction: "rsam_delete_supplier",
		ListKey:      "suppliers",
		IDField:      "supplier_id",
		LabelKey:     "name",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "contact_person", Label: "Contact Person"},
			{Key: "phone", Label: "Phone"},
			{Key: "address", Label: "Address"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "supplier_id", Kind: FieldHidden},
				Field{Name: "name", Label: "Name", Kind: FieldText, Required: true},
				Field{Name: "contact_person", Label: "Contact Person", Kind: FieldText},
				Field{Name: "phone", Label: "Phone", Kind: FieldText},
				Field{Name: "address", Label: "Address", Kind: FieldText},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "supplier_id", "name", "contact_person", "phone", "address")
		},
	}
}

func customerDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "customers",
		Singular:     "Customer",
		ListAction:   "rsam_get_customers",
		SaveAction:   "rsam_save_customer",
		DeleteAction: "rsam_delete_customer",
		ListKey:      "customers",
		IDField:      "customer_id",
		LabelKey:     "name",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "phone", Label: "Phone"},
			{Key: "address", Label: "Address"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "customer_id", Kind: FieldHidden},
				Field{Name: "name", Label: "Name", Kind: FieldText, Required: true},
				Field{Name: "phone", Label: "Phone", Kind: FieldText},
				Field{Name: "address", Label: "Address", Kind: FieldText},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "customer_id", "name", "phone", "address")
		},
	}
}

func employeeDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "employees",
		Singular:     "Employee",
		ListAction:   "rsam_get_employees",
		SaveAction:   "rsam_save_employee",
		DeleteAction: "rsam_delete_employee",
		ListKey:      "employees",
		IDField:      "employee_id",
		LabelKey:     "name",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "phone", Label: "Phone"},
			{Key: "role", Label: "Role"},
			{Key: "monthly_salary_formatted", Label: "Monthly Salary"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "employee_id", Kind: FieldHidden},
				Field{Name: "name", Label: "Name", Kind: FieldText, Required: true},
				Field{Name: "phone", Label: "Phone", Kind: FieldText},
				Field{Name: "role", Label: "Role", Kind: FieldText},
				Field{Name: "monthly_salary", Label: "Monthly Salary", Kind: FieldNumber, Required: true},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "employee_id", "name", "phone", "role", "monthly_salary")
		},
	}
}

func expenseDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "expenses",
		Singular:     "Expense",
		ListAction:   "rsam_get_expenses",
		SaveAction:   "rsam_save_expense",
		DeleteAction: "rsam_delete_expense",
		ListKey:      "expenses",
		IDField:      "expense_id",
		LabelKey:     "category",
		Columns: []Column{
			{Key: "expense_date", Label: "Date"},
			{Key: "category", Label: "Category"},
			{Key: "description", Label: "Description"},
			{Key: "amount_formatted", Label: "Amount"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "expense_id", Kind: FieldHidden},
				Field{Name: "category", Label: "Category", Kind: FieldText, Required: true},
				Field{Name: "description", Label: "Description", Kind: FieldText},
				Field{Name: "amount", Label: "Amount", Kind: FieldNumber, Required: true},
				Field{Name: "expense_date", Label: "Date", Kind: FieldDate},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "expense_id", "category", "description", "amount", "expense_date")
		},
	}
}

func purchaseDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "purchases",
		Singular:     "Purchase",
		ListAction:   "rsam_get_purchases",
		SaveAction:   "rsam_save_purchase",
		DeleteAction: "rsam_delete_purchase",
		ListKey:      "purchases",
		IDField:      "purchase_id",
		LabelKey:     "product_name",
		Columns: []Column{
			{Key: "purchase_date", Label: "Date"},
			{Key: "product_name", Label: "Product"},
			{Key: "supplier_name", Label: "Supplier"},
			{Key: "quantity", Label: "Quantity"},
			{Key: "unit_cost_formatted", Label: "Unit Cost"},
			{Key: "total_formatted", Label: "Total"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "purchase_id", Kind: FieldHidden},
				Field{Name: "supplier_id", Label: "Supplier ID", Kind: FieldNumber},
				Field{Name: "product_id", Label: "Product ID", Kind: FieldNumber, Required: true},
				Field{Name: "quantity", Label: "Quantity", Kind: FieldNumber, Required: true},
				Field{Name: "unit_cost", Label: "Unit Cost", Kind: FieldNumber, Required: true},
				Field{Name: "purchase_date", Label: "Date", Kind: FieldDate},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "purchase_id",
				"supplier_id", "product_id", "quantity", "unit_cost", "purchase_date")
		},
	}
}

func saleDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Screen:       "sales",
		Singular:     "Sale",
		ListAction:   "rsam_get_sales",
		SaveAction:   "rsam_save_sale",
		DeleteAction: "rsam_delete_sale",
		ListKey:      "sales",
		IDField:      "sale_id",
		LabelKey:     "customer_name",
		Columns: []Column{
			{Key: "sale_date", Label: "Date"},
			{Key: "customer_name", Label: "Customer"},
			{Key: "total_formatted", Label: "Total"},
		},
		NewForm: func() *Form {
			return NewForm(
				Field{Name: "sale_id", Kind: FieldHidden},
				Field{Name: "customer_id", Label: "Customer ID", Kind: FieldNumber},
				Field{Name: "product_id", Label: "Product ID", Kind: FieldNumber, Required: true},
				Field{Name: "quantity", Label: "Quantity", Kind: FieldNumber, Required: true},
				Field{Name: "unit_price", Label: "Unit Price", Kind: FieldNumber, Required: true},
				Field{Name: "sale_date", Label: "Date", Kind: FieldDate},
			)
		},
		Populate: func(form *Form, rec Record) {
			populateFields(form, rec, "sale_id", "customer_id", "sale_date")
			if items, ok := rec["items"].([]any); ok && len(items) > 0 {
				if item, ok := items[0].(map[string]any); ok {
					first := Record(item)
					_ = form.Set("product_id", first.String("product_id"))
					_ = form.Set("quantity", first.String("quantity"))
					_ = form.Set("unit_price", first.String("unit_price"))
				}
			}
		},
	}
}
