package signal

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CommandKind", func() {
	It("should deselect by raising chip-select only", func() {
		Expect(CmdKindDeselect.Pins()).To(Equal(
			CommandPins{CSn: true, RASn: true, CASn: true, WEn: true}))
	})

	It("should encode the command lines active low", func() {
		Expect(CmdKindNoOp.Pins()).To(Equal(
			CommandPins{RASn: true, CASn: true, WEn: true}))
		Expect(CmdKindLoadMode.Pins()).To(Equal(CommandPins{}))
		Expect(CmdKindAutoRefresh.Pins()).To(Equal(CommandPins{WEn: true}))
		Expect(CmdKindPrecharge.Pins()).To(Equal(CommandPins{CASn: true}))
		Expect(CmdKindActivate.Pins()).To(Equal(
			CommandPins{CASn: true, WEn: true}))
		Expect(CmdKindWrite.Pins()).To(Equal(CommandPins{RASn: true}))
		Expect(CmdKindRead.Pins()).To(Equal(
			CommandPins{RASn: true, WEn: true}))
	})

	It("should keep chip-select low for every real command", func() {
		kinds := []CommandKind{
			CmdKindNoOp, CmdKindLoadMode, CmdKindAutoRefresh,
			CmdKindPrecharge, CmdKindActivate, CmdKindWrite, CmdKindRead,
		}

		for _, k := range kinds {
			Expect(k.Pins().CSn).To(BeFalse(), k.String())
		}
	})
})

var _ = Describe("DQ", func() {
	It("should distinguish driving zero from not driving", func() {
		Expect(DriveDQ(0).IsDriven()).To(BeTrue())
		Expect(ReleaseDQ().IsDriven()).To(BeFalse())
	})

	It("should sample a released bus as zero", func() {
		Expect(ReleaseDQ().Word()).To(Equal(uint16(0)))
		Expect(DriveDQ(0xAABB).Word()).To(Equal(uint16(0xAABB)))
	})
})
