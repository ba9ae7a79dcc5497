package timeline

// User-facing messages. The admin panel speaks Indonesian.
const (
	MsgProgramRequired = "Program wajib diisi."
	MsgInvalidTime     = "Format waktu harus HH:MM."
	MsgInvalidDay      = "Hari tidak valid."
	MsgAdded           = "Playlist ditambahkan."
	MsgAddFailed       = "Gagal menyimpan playlist."
	MsgDeleteConfirm   = "Hapus item playlist ini?"
	MsgDeleted         = "Item playlist dihapus."
	MsgDeleteFailed    = "Gagal hapus"
	MsgReordered       = "Urutan diperbarui."
	MsgReorderRejected = "Gagal menyimpan urutan."
	MsgReorderFailed   = "Gagal mengurutkan."
	MsgLoadFailed      = "Gagal memuat playlist."
	MsgImportSucceeded = "Import sukses. Inserted: %d, Updated: %d"
	MsgImportFailed    = "Gagal import CSV."
	MsgEmptyDay        = "Belum ada playlist untuk %s."
	MsgTodayBadge      = "Hari ini"
	MsgTodaySuffix     = " (hari ini)"
	placeholderProgram = "-"
)
