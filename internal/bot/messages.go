package bot

// Static replies are pre-escaped MarkdownV2. Dynamic values go through
// Escape before interpolation.

const welcomeMessage = `🏦 *Selamat datang di Expense Tracker Bot\!*

Bot ini akan mencatat pengeluaran Anda ke Google Sheets secara otomatis\.

*Cara menggunakan:*
• Ketik jumlah dan deskripsi: 50000 makan siang
• /hari \- Lihat pengeluaran hari ini
• /minggu \- Lihat pengeluaran minggu ini
• /export \- Export data lokal ke Google Sheets
• /sheets \- Dapatkan link Google Sheets
• /help \- Bantuan

*Fitur Google Sheets:*
✅ Auto\-sync setiap pengeluaran
✅ Daily summary otomatis
✅ Data backup lokal
✅ Export manual jika diperlukan`

const helpMessage = `📋 *Bantuan Expense Tracker Bot*

*Format input pengeluaran:*
Ketik: jumlah spasi deskripsi
Contoh: 50000 makan siang

*Perintah yang tersedia:*
/start \- Pesan selamat datang
/hari \- Lihat pengeluaran hari ini
/minggu \- Lihat pengeluaran minggu ini
/export \- Export data lokal ke Google Sheets
/sheets \- Link ke Google Sheets
/help \- Bantuan ini

*Tips:*
• Pastikan format angka tanpa titik atau koma
• Deskripsi bisa lebih dari satu kata
• Data otomatis tersimpan ke Google Sheets`

const (
	msgInvalidFormat   = "❌ Format tidak valid\\. Gunakan: \\[jumlah\\] \\[deskripsi\\]\nContoh: 50000 makan siang"
	msgSaveFailed      = "❌ Terjadi kesalahan saat menyimpan pengeluaran\\."
	msgQueryFailed     = "❌ Terjadi kesalahan saat mengambil data\\."
	msgNoExpensesToday = "📝 Belum ada pengeluaran hari ini\\."
	msgNoExpensesWeek  = "📝 Belum ada pengeluaran minggu ini\\."
	msgSheetsMissing   = "❌ Google Sheets belum dikonfigurasi\\."
	msgMirrorDown      = "❌ Google Sheets tidak tersedia\\."
	msgExporting       = "⏳ Mengexport data ke Google Sheets\\.\\.\\."
	msgExportDone      = "✅ Data berhasil diexport ke Google Sheets\\!"
	msgExportEmpty     = "❌ Tidak ada data untuk diexport\\."
	msgExportFailed    = "❌ Terjadi kesalahan saat export data\\."

	footerMirror = "\n📊 *Data dari Google Sheets*"
	footerLocal  = "\n💾 *Data dari penyimpanan lokal*"
)
