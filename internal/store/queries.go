package store

// SQL queries for the postgres store. Filters for the offers listing are
// appended in code, everything else is a fixed statement.

const (
	queryFindSupplierByName = `
SELECT id FROM suppliers WHERE name = @name;`

	queryCreateSupplier = `
INSERT INTO suppliers (name, address, contact, website, rating)
VALUES (@name, @address, @contact, @website, @rating)
RETURNING id;`

	// Brand comparison goes through COALESCE so a NULL brand and an
	// empty-string key mean the same product.
	queryFindProductByKey = `
SELECT id FROM products
WHERE part_number = @part_number
  AND name = @name
  AND COALESCE(brand, '') = @brand;`

	queryCreateProduct = `
INSERT INTO products (part_number, name, brand, model, serial_number,
                      scheme, pos_scheme, material, size, comment, category)
VALUES (@part_number, @name, @brand, @model, @serial_number,
        @scheme, @pos_scheme, @material, @size, @comment, @category)
RETURNING id;`

	queryUpsertOffer = `
INSERT INTO supplier_product_prices (product_id, supplier_id, total_price, lead_time, currency)
VALUES (@product_id, @supplier_id, @total_price, @lead_time, @currency)
ON CONFLICT (product_id, supplier_id) DO UPDATE SET
    total_price = EXCLUDED.total_price,
    lead_time   = COALESCE(EXCLUDED.lead_time, supplier_product_prices.lead_time),
    currency    = EXCLUDED.currency;`

	queryListProducts = `
SELECT p.id, p.part_number, p.name, p.brand, p.model, p.serial_number,
       p.scheme, p.pos_scheme, p.material, p.size, p.comment,
       p.category, c.description
FROM products p
LEFT JOIN product_categories c ON c.code = p.category
ORDER BY p.id;`

	queryGetProduct = `
SELECT p.id, p.part_number, p.name, p.brand, p.model, p.serial_number,
       p.scheme, p.pos_scheme, p.material, p.size, p.comment,
       p.category, c.description
FROM products p
LEFT JOIN product_categories c ON c.code = p.category
WHERE p.id = @id;`

	queryDeleteProduct = `
DELETE FROM products WHERE id = @id;`

	queryListSuppliers = `
SELECT id, name, address, contact, website, rating
FROM suppliers
ORDER BY name;`

	queryDeleteSupplier = `
DELETE FROM suppliers WHERE id = @id;`

	queryListOffers = `
SELECT id, product_id, supplier_id, total_price, lead_time, currency
FROM supplier_product_prices`

	queryListCategories = `
SELECT code, description FROM product_categories ORDER BY code;`
)
