package storage

import (
	"fmt"
)

// SeedSample populates the store with a small demo dataset so that `venda ask`
// works out of the box. It is idempotent: seeding an already-populated store
// is a no-op.
func (s *Store) SeedSample() error {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		return fmt.Errorf("checking existing data: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range sampleData {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("seeding sample data: %w", err)
		}
	}

	return tx.Commit()
}

// sampleData is a miniature slice of a Brazilian e-commerce dataset: enough
// rows to exercise counts, yearly breakdowns, category rankings, and status
// distributions.
var sampleData = []string{
	`INSERT INTO customers (customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state) VALUES
		('c001', 'u001', 1310, 'sao paulo', 'SP'),
		('c002', 'u002', 20040, 'rio de janeiro', 'RJ'),
		('c003', 'u003', 30130, 'belo horizonte', 'MG'),
		('c004', 'u004', 80010, 'curitiba', 'PR'),
		('c005', 'u005', 90010, 'porto alegre', 'RS'),
		('c006', 'u006', 40015, 'salvador', 'BA')`,

	`INSERT INTO sellers (seller_id, seller_zip_code_prefix, seller_city, seller_state) VALUES
		('s001', 1310, 'sao paulo', 'SP'),
		('s002', 13015, 'campinas', 'SP'),
		('s003', 20040, 'rio de janeiro', 'RJ')`,

	`INSERT INTO products (product_id, product_category_name, product_name_lenght, product_description_lenght, product_photos_qty, product_weight_g, product_length_cm, product_height_cm, product_width_cm) VALUES
		('p001', 'informatica_acessorios', 42, 340, 2, 250, 20, 5, 12),
		('p002', 'beleza_saude', 35, 280, 3, 150, 10, 8, 10),
		('p003', 'cama_mesa_banho', 50, 410, 1, 1200, 40, 10, 30),
		('p004', 'esporte_lazer', 38, 300, 4, 800, 35, 15, 25),
		('p005', 'moveis_decoracao', 47, 520, 2, 5000, 60, 40, 50)`,

	`INSERT INTO product_category_name_translation (product_category_name, product_category_name_english) VALUES
		('informatica_acessorios', 'computers_accessories'),
		('beleza_saude', 'health_beauty'),
		('cama_mesa_banho', 'bed_bath_table'),
		('esporte_lazer', 'sports_leisure'),
		('moveis_decoracao', 'furniture_decor')`,

	`INSERT INTO orders (order_id, customer_id, order_status, order_purchase_timestamp, order_approved_at, order_delivered_carrier_date, order_delivered_customer_date, order_estimated_delivery_date) VALUES
		('o001', 'c001', 'delivered', '2017-01-15 10:22:00', '2017-01-15 11:00:00', '2017-01-17 08:00:00', '2017-01-22 14:30:00', '2017-02-01 00:00:00'),
		('o002', 'c002', 'delivered', '2017-03-02 09:10:00', '2017-03-02 10:05:00', '2017-03-04 12:00:00', '2017-03-10 16:00:00', '2017-03-20 00:00:00'),
		('o003', 'c003', 'shipped',   '2017-06-21 18:45:00', '2017-06-21 19:00:00', '2017-06-23 09:00:00', NULL, '2017-07-05 00:00:00'),
		('o004', 'c001', 'delivered', '2018-02-11 08:30:00', '2018-02-11 09:00:00', '2018-02-13 10:00:00', '2018-02-18 11:20:00', '2018-03-01 00:00:00'),
		('o005', 'c004', 'canceled',  '2018-04-05 14:12:00', NULL, NULL, NULL, '2018-04-25 00:00:00'),
		('o006', 'c005', 'delivered', '2018-07-19 20:05:00', '2018-07-19 21:00:00', '2018-07-21 08:30:00', '2018-07-27 13:00:00', '2018-08-10 00:00:00'),
		('o007', 'c002', 'delivered', '2018-09-30 12:00:00', '2018-09-30 12:30:00', '2018-10-02 09:15:00', '2018-10-08 17:45:00', '2018-10-20 00:00:00'),
		('o008', 'c006', 'processing','2018-11-24 23:55:00', '2018-11-25 00:10:00', NULL, NULL, '2018-12-15 00:00:00'),
		('o009', 'c003', 'delivered', '2019-01-08 07:40:00', '2019-01-08 08:00:00', '2019-01-10 10:00:00', '2019-01-15 12:00:00', '2019-01-28 00:00:00'),
		('o010', 'c005', 'delivered', '2019-05-17 16:20:00', '2019-05-17 17:00:00', '2019-05-19 09:00:00', '2019-05-24 10:30:00', '2019-06-05 00:00:00'),
		('o011', 'c004', 'unavailable', '2019-08-03 11:11:00', NULL, NULL, NULL, '2019-08-25 00:00:00'),
		('o012', 'c001', 'delivered', '2019-12-20 19:30:00', '2019-12-20 20:00:00', '2019-12-22 08:00:00', '2019-12-28 15:00:00', '2020-01-10 00:00:00')`,

	`INSERT INTO order_items (order_id, order_item_id, product_id, seller_id, shipping_limit_date, price, freight_value) VALUES
		('o001', 1, 'p001', 's001', '2017-01-18 00:00:00', 129.90, 15.10),
		('o002', 1, 'p002', 's002', '2017-03-05 00:00:00', 59.90, 8.70),
		('o003', 1, 'p003', 's001', '2017-06-24 00:00:00', 89.00, 12.30),
		('o004', 1, 'p001', 's001', '2018-02-14 00:00:00', 135.00, 14.80),
		('o004', 2, 'p002', 's002', '2018-02-14 00:00:00', 62.50, 8.70),
		('o005', 1, 'p004', 's003', '2018-04-08 00:00:00', 210.00, 22.00),
		('o006', 1, 'p005', 's003', '2018-07-22 00:00:00', 450.00, 48.90),
		('o007', 1, 'p002', 's002', '2018-10-03 00:00:00', 61.00, 8.70),
		('o008', 1, 'p004', 's003', '2018-11-28 00:00:00', 199.90, 21.50),
		('o009', 1, 'p003', 's001', '2019-01-11 00:00:00', 92.40, 12.30),
		('o010', 1, 'p001', 's001', '2019-05-20 00:00:00', 142.00, 15.10),
		('o012', 1, 'p005', 's003', '2019-12-23 00:00:00', 475.00, 51.20)`,

	`INSERT INTO order_payments (order_id, payment_sequential, payment_type, payment_installments, payment_value) VALUES
		('o001', 1, 'credit_card', 3, 145.00),
		('o002', 1, 'boleto', 1, 68.60),
		('o003', 1, 'credit_card', 2, 101.30),
		('o004', 1, 'credit_card', 5, 221.00),
		('o005', 1, 'voucher', 1, 232.00),
		('o006', 1, 'credit_card', 10, 498.90),
		('o007', 1, 'debit_card', 1, 69.70),
		('o008', 1, 'credit_card', 4, 221.40),
		('o009', 1, 'boleto', 1, 104.70),
		('o010', 1, 'credit_card', 2, 157.10),
		('o012', 1, 'credit_card', 8, 526.20)`,

	`INSERT INTO order_reviews (review_id, order_id, review_score, review_comment_title, review_comment_message, review_creation_date, review_answer_timestamp) VALUES
		('r001', 'o001', 5, 'otimo', 'chegou antes do prazo', '2017-01-23 00:00:00', '2017-01-24 10:00:00'),
		('r002', 'o002', 4, NULL, 'produto bom', '2017-03-11 00:00:00', '2017-03-12 09:00:00'),
		('r003', 'o004', 5, 'recomendo', NULL, '2018-02-19 00:00:00', '2018-02-20 08:00:00'),
		('r004', 'o005', 1, 'cancelado', 'pedido cancelado sem aviso', '2018-04-10 00:00:00', '2018-04-11 14:00:00'),
		('r005', 'o006', 4, NULL, NULL, '2018-07-28 00:00:00', '2018-07-29 12:00:00'),
		('r006', 'o009', 3, NULL, 'demorou um pouco', '2019-01-16 00:00:00', '2019-01-17 10:00:00'),
		('r007', 'o012', 5, 'perfeito', 'excelente qualidade', '2019-12-29 00:00:00', '2019-12-30 09:00:00')`,

	`INSERT INTO geolocation (geolocation_zip_code_prefix, geolocation_lat, geolocation_lng, geolocation_city, geolocation_state) VALUES
		(1310, -23.5617, -46.6560, 'sao paulo', 'SP'),
		(20040, -22.9035, -43.2096, 'rio de janeiro', 'RJ'),
		(30130, -19.9245, -43.9352, 'belo horizonte', 'MG'),
		(80010, -25.4284, -49.2733, 'curitiba', 'PR'),
		(90010, -30.0331, -51.2300, 'porto alegre', 'RS'),
		(40015, -12.9718, -38.5011, 'salvador', 'BA')`,
}
