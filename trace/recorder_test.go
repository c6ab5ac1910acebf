package trace

import (
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cnbltyasar/sdramsim/sdram/signal"
)

var _ = Describe("SQLiteWriter", func() {
	var (
		dbPath string
		writer *SQLiteWriter
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "trace.sqlite3")
		writer = NewSQLiteWriter(dbPath)
	})

	AfterEach(func() {
		writer.Close()
	})

	It("should report the database path", func() {
		Expect(writer.Path()).To(Equal(dbPath))
	})

	It("should list created tables", func() {
		writer.CreateTable("command_trace", signal.CommandRecord{})

		Expect(writer.ListTables()).To(ConsistOf("command_trace"))
	})

	It("should persist inserted entries on flush", func() {
		writer.CreateTable("command_trace", signal.CommandRecord{})

		writer.InsertData("command_trace", signal.CommandRecord{
			Cycle: 1, State: "Init", Command: "Precharge", Address: 0x400,
		})
		writer.InsertData("command_trace", signal.CommandRecord{
			Cycle: 3, State: "Refreshing", Command: "AutoRefresh",
		})
		writer.Flush()

		db, err := sql.Open("sqlite3", dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var count int
		err = db.QueryRow(
			"SELECT COUNT(*) FROM command_trace").Scan(&count)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))

		var command string
		err = db.QueryRow(
			"SELECT Command FROM command_trace WHERE Cycle = 3").
			Scan(&command)
		Expect(err).NotTo(HaveOccurred())
		Expect(command).To(Equal("AutoRefresh"))
	})

	It("should reject duplicate tables", func() {
		writer.CreateTable("command_trace", signal.CommandRecord{})

		Expect(func() {
			writer.CreateTable("command_trace", signal.CommandRecord{})
		}).To(Panic())
	})

	It("should reject inserts into unknown tables", func() {
		Expect(func() {
			writer.InsertData("missing", signal.CommandRecord{})
		}).To(Panic())
	})
})
