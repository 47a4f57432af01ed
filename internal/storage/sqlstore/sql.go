package sqlstore

// Both drivers accept '?' placeholders, so only DDL is dialect specific.

const countHotelsSQL = `SELECT COUNT(*) FROM hotels`

const insertHotelSQL = `
INSERT INTO hotels
  (name, city, area, nightly_price, rating, description, image_path, amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const hotelColumns = `id, name, city, area, nightly_price, rating, description, image_path, amenities`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`

const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY id`

const listHotelsByCitySQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE city = ? ORDER BY id`

const distinctCitiesSQL = `SELECT DISTINCT city FROM hotels ORDER BY city ASC`

const insertBookingSQL = `
INSERT INTO bookings
  (hotel_id, guest_name, guest_email, guest_phone, check_in, check_out, rooms, guests, total_price, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Newest first; id breaks ties between bookings made in the same second.
const listBookingsByEmailSQL = `
SELECT
  b.id,
  b.hotel_id,
  b.guest_name,
  b.guest_email,
  b.guest_phone,
  b.check_in,
  b.check_out,
  b.rooms,
  b.guests,
  b.total_price,
  b.created_at,
  h.name AS hotel_name,
  h.city,
  h.area
FROM bookings b
JOIN hotels h ON b.hotel_id = h.id
WHERE b.guest_email = ?
ORDER BY b.created_at DESC, b.id DESC
`
