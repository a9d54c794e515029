package database

const journalSchema = `
CREATE TABLE IF NOT EXISTS sales (
    id             UUID PRIMARY KEY,
    order_id       UUID NOT NULL UNIQUE,
    order_type     VARCHAR(16) NOT NULL,
    table_id       UUID,
    total          NUMERIC(14, 2) NOT NULL,
    payment_method VARCHAR(16) NOT NULL,
    order_snapshot JSONB NOT NULL,
    sold_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales (sold_at);

CREATE TABLE IF NOT EXISTS inventory_movements (
    id                UUID PRIMARY KEY,
    inventory_item_id UUID NOT NULL,
    movement_type     VARCHAR(16) NOT NULL,
    requested         DOUBLE PRECISION NOT NULL,
    quantity          DOUBLE PRECISION NOT NULL,
    previous_stock    DOUBLE PRECISION NOT NULL,
    new_stock         DOUBLE PRECISION NOT NULL,
    reference         TEXT,
    reason            TEXT,
    movement_date     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_movements_item ON inventory_movements (inventory_item_id);
`
